package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/estilourbano/tienda/internal/domain"
	"github.com/estilourbano/tienda/internal/usecase"
)

type createOrderRequest struct {
	Products      []domain.CartItem    `json:"products"`
	CustomerData  usecase.CustomerData `json:"customerData"`
	Total         float64              `json:"total"`
	ShippingCost  float64              `json:"shippingCost"`
	PaymentMethod string               `json:"paymentMethod"`
	Email         string               `json:"email"`
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createOrder(w, r)
	case http.MethodGet:
		s.queryOrders(w, r)
	default:
		methodNotAllowed(w)
	}
}

// createOrder accepts a checkout from the client-held cart. Client-supplied
// total and shippingCost are received for compatibility but recomputed
// server-side.
func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Validation("JSON inválido"))
		return
	}
	email := strings.TrimSpace(req.Email)
	if email != "" && !emailRe.MatchString(email) {
		writeError(w, domain.Validation("Email inválido"))
		return
	}

	o, err := s.orders.Create(r.Context(), usecase.CheckoutInput{
		Items:         req.Products,
		Customer:      req.CustomerData,
		PaymentMethod: req.PaymentMethod,
		Email:         email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// checkout succeeded; the client-held cart is done
	clearCart(w)
	go notifyNewOrder(o)

	writeJSON(w, 200, map[string]any{"success": true, "orderNumber": o.Number, "order": o})
}

func (s *Server) queryOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// a single order by number is public: the payment-instructions page is
	// reachable by guests holding the number
	if numero := q.Get("numero"); numero != "" {
		o, err := s.orders.GetByNumber(r.Context(), numero)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"order": o})
		return
	}

	if email := q.Get("email"); email != "" {
		u, ok := s.require(w, r, levelUser)
		if !ok {
			return
		}
		if !strings.EqualFold(u.Email, email) && u.Role != domain.RoleAdmin {
			writeJSON(w, 403, map[string]string{"error": "Acceso denegado", "code": string(domain.CodeForbidden)})
			return
		}
		list, err := s.orders.ListByEmail(r.Context(), email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"orders": list})
		return
	}

	if _, ok := s.require(w, r, levelAdmin); !ok {
		return
	}
	list, err := s.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"orders": list})
}

// handleOrderByID covers PUT /orders/{id}/status.
func (s *Server) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/orders/")
	idStr, tail, _ := strings.Cut(rest, "/")
	if tail != "status" || r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	if _, ok := s.require(w, r, levelAdmin); !ok {
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, domain.Validation("ID de pedido inválido"))
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, domain.Validation("Datos inválidos"))
		return
	}
	o, err := s.orders.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"success": true, "order": o})
}

func (s *Server) handlePaymentSimulation(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			OrderNumber    string `json:"orderNumber"`
			PaymentOutcome string `json:"paymentOutcome"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.Validation("JSON inválido"))
			return
		}
		o, res, err := s.orders.ConfirmPayment(r.Context(), req.OrderNumber, domain.PaymentOutcome(req.PaymentOutcome))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{
			"success": true,
			"order":   o,
			"message": res.Message,
			"status":  o.Status,
		})
	case http.MethodPut:
		var req struct {
			OrderNumber      string `json:"orderNumber"`
			BankConfirmation string `json:"bankConfirmation"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.Validation("JSON inválido"))
			return
		}
		o, confirmed, err := s.orders.ConfirmBankTransfer(r.Context(), req.OrderNumber, req.BankConfirmation)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{
			"success":          true,
			"order":            o,
			"paymentConfirmed": confirmed,
			"status":           o.Status,
		})
	default:
		methodNotAllowed(w)
	}
}

// handlePaymentInfo serves the manual bank-transfer instructions the
// confirmation page renders.
func (s *Server) handlePaymentInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	number := os.Getenv("NEQUI_NUMBER")
	if number == "" {
		number = "3243118004"
	}
	holder := os.Getenv("NEQUI_HOLDER")
	if holder == "" {
		holder = "Estilo Urbano SAS"
	}
	whatsapp := os.Getenv("WHATSAPP_NUMBER")
	if whatsapp == "" {
		whatsapp = "324 311 80 04"
	}
	writeJSON(w, 200, map[string]any{
		"bankAccount": map[string]string{
			"name":   "Nequi",
			"number": number,
			"holder": holder,
			"type":   "Billetera digital",
		},
		"contact": map[string]string{
			"whatsapp":      whatsapp,
			"businessHours": "Lunes a Viernes 8:00 AM - 6:00 PM",
		},
		"instructions": []string{
			"Realiza el pago por el monto exacto",
			"Usa el número de pedido como referencia",
			"Envía el comprobante de pago por WhatsApp",
			"Tu pedido será procesado en 24-48 horas después de confirmar el pago",
		},
	})
}

// notifyNewOrder emails the shop about a fresh order. Silently skipped when
// SMTP isn't configured.
func notifyNewOrder(o *domain.Order) {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	to := os.Getenv("ORDER_NOTIFY_EMAIL")
	if host == "" || port == "" || user == "" || pass == "" || to == "" {
		log.Warn().Msg("SMTP no configurado, se omite envío de email")
		return
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Subject: Nuevo pedido %s\r\n", o.Number)
	fmt.Fprintf(&buf, "From: %s\r\nTo: %s\r\n", user, to)
	buf.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "Pedido: %s\nCliente: %s %s\nEmail: %s\nTel: %s\n", o.Number, o.Name, o.LastName, o.Email, o.Phone)
	fmt.Fprintf(&buf, "Envío a: %s, %s (%s)\n", o.Address, o.City, o.Department)
	buf.WriteString("Items:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&buf, "- %s (%s) x%d $%.0f\n", it.Name, it.Size, it.Quantity, it.UnitPrice)
	}
	fmt.Fprintf(&buf, "Total: $%.0f (Envío: $%.0f)\n", o.Total, o.ShippingCost)

	auth := smtp.PlainAuth("", user, pass, host)
	if err := smtp.SendMail(host+":"+port, auth, user, []string{to}, buf.Bytes()); err != nil {
		log.Error().Err(err).Str("order", o.Number).Msg("email send")
	}
}
