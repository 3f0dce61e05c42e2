package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/estilourbano/tienda/internal/domain"
)

// The cart cookie is the serialize/deserialize boundary for the client-held
// cart: signed JSON, decoded per request, re-signed after every mutation. The
// server keeps no cart state of its own.

func readCart(r *http.Request) *domain.Cart {
	cart := &domain.Cart{}
	c, err := r.Cookie("cart")
	if err != nil || c.Value == "" {
		return cart
	}
	payload := verify(c.Value)
	if payload == nil {
		return cart
	}
	_ = json.Unmarshal(payload, cart)
	return cart
}

func writeCart(w http.ResponseWriter, cart *domain.Cart) {
	b, _ := json.Marshal(cart)
	val := sign(b) + "." + base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{Name: "cart", Value: val, Path: "/", MaxAge: 60 * 60 * 24 * 7, HttpOnly: true})
}

func clearCart(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "cart", Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

func cartState(cart *domain.Cart) map[string]any {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return map[string]any{
		"items":      items,
		"totalItems": cart.TotalItems(),
		"totalPrice": cart.TotalPrice(),
	}
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, 200, cartState(readCart(r)))
}

type cartActionRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
	Size      string    `json:"size"`
	NewSize   string    `json:"newSize"`
	Image     string    `json:"image"`
}

func (s *Server) handleCartAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	action := strings.TrimPrefix(r.URL.Path, "/cart/")

	cart := readCart(r)
	if action == "clear" {
		cart.Clear()
		writeCart(w, cart)
		writeJSON(w, 200, cartState(cart))
		return
	}

	var req cartActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Validation("JSON inválido"))
		return
	}
	if req.ProductID == uuid.Nil {
		writeError(w, domain.Validation("Producto requerido"))
		return
	}

	switch action {
	case "add":
		if req.Size == "" {
			writeError(w, domain.Validation("Talla requerida"))
			return
		}
		cart.Add(domain.CartItem{
			ProductID: req.ProductID,
			Name:      req.Name,
			UnitPrice: req.UnitPrice,
			Size:      req.Size,
			Image:     req.Image,
		})
	case "remove":
		cart.Remove(req.ProductID, req.Size)
	case "increase":
		cart.Increase(req.ProductID, req.Size)
	case "decrease":
		cart.Decrease(req.ProductID, req.Size)
	case "size":
		if req.NewSize == "" {
			writeError(w, domain.Validation("Talla requerida"))
			return
		}
		cart.ChangeSize(req.ProductID, req.Size, req.NewSize)
	default:
		http.NotFound(w, r)
		return
	}

	writeCart(w, cart)
	writeJSON(w, 200, cartState(cart))
}
