package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/estilourbano/tienda/internal/domain"
	"github.com/estilourbano/tienda/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	orders   *usecase.OrderUC
	customs  *usecase.CustomOrderUC
	products *usecase.ProductUC
	users    *usecase.UserUC
	storage  domain.ImageStorage
	oauthCfg *oauth2.Config

	uploadsDir string
}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func New(o *usecase.OrderUC, c *usecase.CustomOrderUC, p *usecase.ProductUC, u *usecase.UserUC, fs domain.ImageStorage, oauthCfg *oauth2.Config, uploadsDir string) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		orders:     o,
		customs:    c,
		products:   p,
		users:      u,
		storage:    fs,
		oauthCfg:   oauthCfg,
		uploadsDir: uploadsDir,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))

	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/register", s.handleRegister)
	s.mux.HandleFunc("/login", s.handleLogin)
	s.mux.HandleFunc("/logout", s.handleLogout)
	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)

	s.mux.HandleFunc("/cart", s.handleCart)
	s.mux.HandleFunc("/cart/", s.handleCartAction)

	s.mux.HandleFunc("/orders", s.handleOrders)
	s.mux.HandleFunc("/orders/", s.handleOrderByID)
	s.mux.HandleFunc("/payment-simulation", s.handlePaymentSimulation)
	s.mux.HandleFunc("/payment-info", s.handlePaymentInfo)

	s.mux.HandleFunc("/personalization-orders", s.handleCustomOrders)

	s.mux.HandleFunc("/products", s.handleProducts)
	s.mux.HandleFunc("/products/", s.handleProductByID)
	s.mux.HandleFunc("/upload", s.handleUpload)

	s.mux.HandleFunc("/users", s.handleUsers)
	s.mux.HandleFunc("/users/", s.handleUserByID)

	s.mux.HandleFunc("/admin/orders/export", s.handleOrdersExport)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Anything outside the
// taxonomy is logged server-side and answered with a generic message.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		writeJSON(w, statusFor(de.Code), map[string]string{"error": de.Message, "code": string(de.Code)})
		return
	}
	log.Error().Err(err).Msg("error interno")
	writeJSON(w, 500, map[string]string{"error": "Error interno del servidor", "code": string(domain.CodeInternal)})
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation, domain.CodeConflict:
		return 400
	case domain.CodeNotFound:
		return 404
	case domain.CodeUnauthorized:
		return 401
	case domain.CodeForbidden:
		return 403
	default:
		return 500
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, 405, map[string]string{"error": "Método no permitido", "code": string(domain.CodeValidation)})
}
