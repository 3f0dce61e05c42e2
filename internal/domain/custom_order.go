package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Every personalized garment sells at a fixed unit price, one per line.
const CustomItemUnitPrice = 40000

const CustomOrderStatusPending = "pending"

// CustomOrder is a personalization order: the design is submitted first, the
// shipping and payment data arrive at a later checkout step.
type CustomOrder struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Number        string            `gorm:"size:40;uniqueIndex" json:"number"`
	UserID        *uuid.UUID        `gorm:"type:uuid;index" json:"userId,omitempty"`
	Email         string            `gorm:"size:140;index" json:"email"`
	Status        string            `gorm:"size:30;index" json:"status"`
	Name          string            `gorm:"size:140" json:"name"`
	LastName      string            `gorm:"size:140" json:"lastName"`
	Address       string            `gorm:"size:255" json:"address"`
	Phone         string            `gorm:"size:50" json:"phone"`
	City          string            `gorm:"size:100" json:"city"`
	Department    string            `gorm:"size:100" json:"department"`
	PaymentMethod string            `gorm:"size:30" json:"paymentMethod"`
	ShippingCost  float64           `gorm:"type:decimal(12,2)" json:"shippingCost"`
	Total         float64           `gorm:"type:decimal(12,2)" json:"total"`
	Items         []CustomOrderItem `json:"items"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"-"`
}

type CustomOrderItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomOrderID     uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Color             string    `gorm:"size:60" json:"color"`
	Size              string    `gorm:"size:20" json:"size"`
	Text              string    `gorm:"size:140" json:"text,omitempty"`
	TextColor         string    `gorm:"size:60" json:"textColor,omitempty"`
	Image             string    `gorm:"size:255" json:"image,omitempty"`
	ImageAssetID      string    `gorm:"size:140" json:"imageAssetId,omitempty"`
	FrontImage        string    `gorm:"size:255" json:"frontImage,omitempty"`
	FrontImageAssetID string    `gorm:"size:140" json:"frontImageAssetId,omitempty"`
	BackImage         string    `gorm:"size:255" json:"backImage,omitempty"`
	BackImageAssetID  string    `gorm:"size:140" json:"backImageAssetId,omitempty"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	UnitPrice         float64   `gorm:"type:decimal(12,2)" json:"unitPrice"`
}

type CustomOrderRepo interface {
	Create(ctx context.Context, o *CustomOrder) error
	Save(ctx context.Context, o *CustomOrder) error
	FindByNumber(ctx context.Context, number string) (*CustomOrder, error)
	ListAll(ctx context.Context) ([]CustomOrder, error)
	// Delete removes the child items before the parent row.
	Delete(ctx context.Context, o *CustomOrder) error
}
