// Package localfs stores uploaded images on the local filesystem and serves
// them under /uploads/. The asset id is the stored filename.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/estilourbano/tienda/internal/domain"
)

type Storage struct {
	dir string
}

var _ domain.ImageStorage = (*Storage)(nil)

func New(dir string) *Storage { return &Storage{dir: dir} }

func (s *Storage) Save(ctx context.Context, name string, r io.Reader) (string, string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(filepath.Base(name), ext)
	base = strings.Map(func(c rune) rune {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' {
			return c
		}
		return '_'
	}, base)
	assetID := fmt.Sprintf("%s_%s%s", base, uuid.NewString()[:8], ext)

	f, err := os.Create(filepath.Join(s.dir, assetID))
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", "", err
	}
	return "/uploads/" + assetID, assetID, nil
}

// Delete accepts either the asset id or the public /uploads/ URL.
func (s *Storage) Delete(ctx context.Context, assetID string) error {
	assetID = strings.TrimPrefix(assetID, "/uploads/")
	if assetID == "" || strings.Contains(assetID, "/") || strings.Contains(assetID, "..") {
		return fmt.Errorf("asset id inválido: %q", assetID)
	}
	return os.Remove(filepath.Join(s.dir, assetID))
}
