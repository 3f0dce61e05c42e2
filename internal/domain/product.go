package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:180" json:"name"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	Price        float64   `gorm:"type:decimal(12,2)" json:"price"`
	Image        string    `gorm:"size:255" json:"image,omitempty"`
	ImageAssetID string    `gorm:"size:140" json:"imageAssetId,omitempty"`
	Sizes        []string  `gorm:"type:jsonb;serializer:json" json:"sizes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// ProductPatch is a partial update; nil fields keep their previous values.
type ProductPatch struct {
	Name         *string
	Description  *string
	Price        *float64
	Image        *string
	ImageAssetID *string
	Sizes        []string
}

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
