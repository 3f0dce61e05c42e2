package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/estilourbano/tienda/internal/domain"
	"github.com/estilourbano/tienda/internal/usecase"
)

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.require(w, r, levelAdmin); !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := s.users.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, list)
	case http.MethodPost:
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.Validation("JSON inválido"))
			return
		}
		u, err := s.users.Create(r.Context(), req.Name, req.Email, req.Password, req.Role)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 201, u)
	default:
		methodNotAllowed(w)
	}
}

// handleUserByID covers /users/{id} and /users/{id}/role.
func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.require(w, r, levelAdmin)
	if !ok {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/users/")
	idStr, tail, hasTail := strings.Cut(rest, "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, domain.Validation("ID de usuario inválido"))
		return
	}

	if hasTail {
		if tail != "role" || r.Method != http.MethodPut {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.Validation("JSON inválido"))
			return
		}
		u, err := s.users.SetRole(r.Context(), id, req.Role, actor.Email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, u)
		return
	}

	switch r.Method {
	case http.MethodGet:
		u, err := s.users.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, u)
	case http.MethodPut:
		var req struct {
			Name  *string `json:"name"`
			Email *string `json:"email"`
			Role  *string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.Validation("JSON inválido"))
			return
		}
		u, err := s.users.Update(r.Context(), id, usecase.UserPatch{Name: req.Name, Email: req.Email, Role: req.Role})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, u)
	case http.MethodDelete:
		if err := s.users.Delete(r.Context(), id, actor.Email); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, map[string]string{"message": "Usuario eliminado correctamente"})
	default:
		methodNotAllowed(w)
	}
}
