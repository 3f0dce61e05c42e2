package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/estilourbano/tienda/internal/domain"
	"github.com/estilourbano/tienda/internal/usecase"
)

func (s *Server) handleCustomOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createCustomOrder(w, r)
	case http.MethodGet:
		s.queryCustomOrders(w, r)
	case http.MethodPut:
		s.customCheckout(w, r)
	case http.MethodDelete:
		s.deleteCustomOrder(w, r)
	default:
		methodNotAllowed(w)
	}
}

// createCustomOrder is phase one of the personalization flow: multipart form
// with one block of fields per garment, artwork files included.
func (s *Server) createCustomOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, domain.Validation("Formulario multipart inválido"))
		return
	}
	email := r.FormValue("email")

	var items []usecase.CustomItemInput
	for i := 0; ; i++ {
		key := func(field string) string { return fmt.Sprintf("items[%d][%s]", i, field) }
		if _, ok := r.MultipartForm.Value[key("color")]; !ok {
			break
		}
		item := usecase.CustomItemInput{
			Color:     r.FormValue(key("color")),
			Size:      r.FormValue(key("size")),
			Text:      r.FormValue(key("text")),
			TextColor: r.FormValue(key("textColor")),
		}
		var err error
		if item.Image, err = formUpload(r, key("image")); err != nil {
			writeError(w, err)
			return
		}
		if item.FrontImage, err = formUpload(r, key("frontImage")); err != nil {
			writeError(w, err)
			return
		}
		if item.BackImage, err = formUpload(r, key("backImage")); err != nil {
			writeError(w, err)
			return
		}
		items = append(items, item)
	}

	o, err := s.customs.Create(r.Context(), email, items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "orderNumber": o.Number})
}

func formUpload(r *http.Request, key string) (*usecase.CustomUpload, error) {
	fhs := r.MultipartForm.File[key]
	if len(fhs) == 0 || fhs[0].Size == 0 {
		return nil, nil
	}
	f, err := fhs[0].Open()
	if err != nil {
		return nil, domain.Validation("Archivo inválido")
	}
	// consumed and closed by the usecase before ParseMultipartForm cleanup runs
	return &usecase.CustomUpload{Filename: fhs[0].Filename, Data: f}, nil
}

func (s *Server) queryCustomOrders(w http.ResponseWriter, r *http.Request) {
	numero := r.URL.Query().Get("numero")
	if numero == "" {
		if _, ok := s.require(w, r, levelAdmin); !ok {
			return
		}
		list, err := s.customs.ListAll(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"orders": list})
		return
	}
	view, err := s.customs.InstructionsView(r.Context(), numero)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"order": view, "type": "custom"})
}

// customCheckout is phase two: shipping fields, payment method and shipping
// cost land on the pending personalization order.
func (s *Server) customCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Numero        string                `json:"numero"`
		CustomerData  *usecase.CustomerData `json:"customerData"`
		PaymentMethod string                `json:"paymentMethod"`
		ShippingCost  *float64              `json:"shippingCost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Validation("JSON inválido"))
		return
	}
	o, err := s.customs.Checkout(r.Context(), req.Numero, usecase.CustomCheckoutInput{
		Customer:      req.CustomerData,
		PaymentMethod: req.PaymentMethod,
		ShippingCost:  req.ShippingCost,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "order": o})
}

func (s *Server) deleteCustomOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.require(w, r, levelAdmin); !ok {
		return
	}
	numero := r.URL.Query().Get("numero")
	if err := s.customs.Delete(r.Context(), numero); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}
