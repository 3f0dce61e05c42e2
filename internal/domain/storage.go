package domain

import (
	"context"
	"io"
)

// ImageStorage hosts uploaded product images and personalization artwork.
// Save returns a public URL plus an asset id usable for later deletion.
type ImageStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (url, assetID string, err error)
	Delete(ctx context.Context, assetID string) error
}
