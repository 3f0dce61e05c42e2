package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// ParseOrderStatus validates an externally supplied status value against the
// fixed enum. Transitions themselves are not validated: any stored state is
// reachable from any other via the admin endpoint.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPendingPayment, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered:
		return OrderStatus(s), true
	}
	return "", false
}

type Order struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Number        string      `gorm:"size:40;uniqueIndex" json:"number"`
	UserID        *uuid.UUID  `gorm:"type:uuid;index" json:"userId,omitempty"`
	Email         string      `gorm:"size:140;index" json:"email"`
	Name          string      `gorm:"size:140" json:"name"`
	LastName      string      `gorm:"size:140" json:"lastName"`
	Address       string      `gorm:"size:255" json:"address"`
	Phone         string      `gorm:"size:50" json:"phone"`
	City          string      `gorm:"size:100" json:"city"`
	Department    string      `gorm:"size:100" json:"department"`
	Subtotal      float64     `gorm:"type:decimal(12,2)" json:"subtotal"`
	ShippingCost  float64     `gorm:"type:decimal(12,2)" json:"shippingCost"`
	Total         float64     `gorm:"type:decimal(12,2)" json:"total"`
	PaymentMethod string      `gorm:"size:30;index" json:"paymentMethod"`
	Status        OrderStatus `gorm:"type:varchar(30);index" json:"status"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"-"`
}

// OrderItem snapshots product data at order time so later product edits never
// alter historical orders.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"productId"`
	Name      string    `gorm:"size:180" json:"name"`
	Size      string    `gorm:"size:20" json:"size"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(12,2)" json:"unitPrice"`
	Image     string    `gorm:"size:255" json:"image,omitempty"`
}

type OrderRepo interface {
	// Create persists the header and its items as one unit.
	Create(ctx context.Context, o *Order) error
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}
