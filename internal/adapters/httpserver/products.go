package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/estilourbano/tienda/internal/domain"
)

type productRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Image        *string  `json:"image"`
	ImageAssetID *string  `json:"imageAssetId"`
	Sizes        []string `json:"sizes"`
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.products.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, list)
	case http.MethodPost:
		if _, ok := s.require(w, r, levelAdmin); !ok {
			return
		}
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.Validation("JSON inválido"))
			return
		}
		p := &domain.Product{Sizes: req.Sizes}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Image != nil {
			p.Image = *req.Image
		}
		if req.ImageAssetID != nil {
			p.ImageAssetID = *req.ImageAssetID
		}
		if err := s.products.Create(r.Context(), p); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 201, p)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/products/"))
	if err != nil {
		writeError(w, domain.Validation("ID de producto inválido"))
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.products.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, p)
	case http.MethodPut:
		if _, ok := s.require(w, r, levelAdmin); !ok {
			return
		}
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.Validation("JSON inválido"))
			return
		}
		p, err := s.products.Update(r.Context(), id, domain.ProductPatch{
			Name:         req.Name,
			Description:  req.Description,
			Price:        req.Price,
			Image:        req.Image,
			ImageAssetID: req.ImageAssetID,
			Sizes:        req.Sizes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, p)
	case http.MethodDelete:
		if _, ok := s.require(w, r, levelAdmin); !ok {
			return
		}
		if err := s.products.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, 200, map[string]string{"message": "Producto eliminado correctamente"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if _, ok := s.require(w, r, levelAdmin); !ok {
		return
	}
	if err := r.ParseMultipartForm(25 << 20); err != nil {
		writeError(w, domain.Validation("Formulario multipart inválido"))
		return
	}
	fhs := r.MultipartForm.File["file"]
	if len(fhs) == 0 {
		writeError(w, domain.Validation("No se envió ningún archivo"))
		return
	}
	f, err := fhs[0].Open()
	if err != nil {
		writeError(w, domain.Validation("Archivo inválido"))
		return
	}
	defer f.Close()
	url, assetID, err := s.storage.Save(r.Context(), fhs[0].Filename, f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]string{"url": url, "assetId": assetID})
}
