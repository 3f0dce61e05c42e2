package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"

	"github.com/estilourbano/tienda/internal/domain"
)

type sessionUser struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

func secretKey() []byte {
	k := os.Getenv("SESSION_KEY")
	if k == "" {
		k = "dev-insecure"
	}
	return []byte(k)
}

func sign(payload []byte) string {
	h := hmac.New(sha256.New, secretKey())
	h.Write(payload)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func verify(value string) []byte {
	sig, payload, ok := splitSigned(value)
	if !ok {
		return nil
	}
	h := hmac.New(sha256.New, secretKey())
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return nil
	}
	return payload
}

func splitSigned(value string) (sig, payload []byte, ok bool) {
	for i := 0; i < len(value); i++ {
		if value[i] == '.' {
			s, err1 := base64.RawURLEncoding.DecodeString(value[:i])
			p, err2 := base64.RawURLEncoding.DecodeString(value[i+1:])
			return s, p, err1 == nil && err2 == nil
		}
	}
	return nil, nil, false
}

func writeUserSession(w http.ResponseWriter, u *sessionUser) {
	if u == nil {
		http.SetCookie(w, &http.Cookie{Name: "sess", Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteStrictMode})
		return
	}
	b, _ := json.Marshal(u)
	val := sign(b) + "." + base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{Name: "sess", Value: val, Path: "/", MaxAge: 60 * 60 * 24 * 7, HttpOnly: true, SameSite: http.SameSiteStrictMode})
}

func readUserSession(r *http.Request) *sessionUser {
	c, err := r.Cookie("sess")
	if err != nil || c.Value == "" {
		return nil
	}
	payload := verify(c.Value)
	if payload == nil {
		return nil
	}
	var u sessionUser
	if err := json.Unmarshal(payload, &u); err != nil || u.Email == "" {
		return nil
	}
	return &u
}

type accessLevel int

const (
	levelAnonymous accessLevel = iota
	levelUser
	levelAdmin
)

// require is the single capability check every handler goes through; route
// guards on the client are never trusted. It answers 401/403 itself and
// returns ok=false when the caller may not proceed.
func (s *Server) require(w http.ResponseWriter, r *http.Request, level accessLevel) (*sessionUser, bool) {
	u := readUserSession(r)
	switch level {
	case levelUser:
		if u == nil {
			writeJSON(w, 401, map[string]string{"error": "Sesión requerida", "code": string(domain.CodeUnauthorized)})
			return nil, false
		}
	case levelAdmin:
		if u == nil {
			writeJSON(w, 401, map[string]string{"error": "Sesión requerida", "code": string(domain.CodeUnauthorized)})
			return nil, false
		}
		if u.Role != domain.RoleAdmin {
			writeJSON(w, 403, map[string]string{"error": "Acceso denegado", "code": string(domain.CodeForbidden)})
			return nil, false
		}
	}
	return u, true
}
