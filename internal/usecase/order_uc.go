package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/estilourbano/tienda/internal/domain"
)

type OrderUC struct {
	Orders  domain.OrderRepo
	Users   domain.UserRepo
	Gateway domain.PaymentGateway
}

type CustomerData struct {
	Name       string `json:"name"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Department string `json:"department"`
}

func (c CustomerData) complete() bool {
	return c.Name != "" && c.LastName != "" && c.Address != "" &&
		c.Phone != "" && c.City != "" && c.Department != ""
}

type CheckoutInput struct {
	Items         []domain.CartItem
	Customer      CustomerData
	PaymentMethod string
	Email         string
}

// NewOrderNumber builds a human-readable order number from the current
// timestamp plus a short random suffix. Collisions are treated as negligible.
func NewOrderNumber(prefix string, tokenLen int) string {
	tok := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:tokenLen]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), tok)
}

// Create places an order in pending_payment. Totals are recomputed here from
// the item snapshot and the city rate table; client-supplied totals are
// ignored. Resubmitting the same cart creates a second order: checkout is not
// idempotent.
func (uc *OrderUC) Create(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.Validation("Email requerido")
	}
	if len(in.Items) == 0 {
		return nil, domain.Validation("Carrito vacío")
	}
	if !in.Customer.complete() {
		return nil, domain.Validation("Datos de cliente incompletos")
	}

	o := &domain.Order{
		ID:            uuid.New(),
		Number:        NewOrderNumber("PED", 5),
		Email:         email,
		Name:          in.Customer.Name,
		LastName:      in.Customer.LastName,
		Address:       in.Customer.Address,
		Phone:         in.Customer.Phone,
		City:          in.Customer.City,
		Department:    in.Customer.Department,
		PaymentMethod: in.PaymentMethod,
		Status:        domain.OrderStatusPendingPayment,
	}

	// Linking to a registered account is optional; guests order by email only.
	if uc.Users != nil {
		if u, err := uc.Users.FindByEmail(ctx, email); err == nil {
			o.UserID = &u.ID
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	subtotal := 0.0
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.Validation("Cantidad inválida")
		}
		subtotal += it.UnitPrice * float64(it.Quantity)
		o.Items = append(o.Items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Image:     it.Image,
		})
	}
	o.Subtotal = subtotal
	o.ShippingCost = domain.ShippingCostFor(in.Customer.City)
	o.Total = o.Subtotal + o.ShippingCost

	if err := uc.Orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ConfirmPayment applies a simulated gateway callback to the order identified
// by its number. A failed outcome leaves the order in pending_payment; failure
// is never stored as its own status.
func (uc *OrderUC) ConfirmPayment(ctx context.Context, number string, outcome domain.PaymentOutcome) (*domain.Order, domain.PaymentResult, error) {
	if strings.TrimSpace(number) == "" {
		return nil, domain.PaymentResult{}, domain.Validation("Número de pedido requerido")
	}
	o, err := uc.Orders.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.PaymentResult{}, domain.NotFound("Pedido no encontrado")
		}
		return nil, domain.PaymentResult{}, err
	}
	res, err := uc.Gateway.Confirm(ctx, o, outcome)
	if err != nil {
		return nil, domain.PaymentResult{}, err
	}
	o.Status = res.Status
	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, domain.PaymentResult{}, err
	}
	return o, res, nil
}

// ConfirmBankTransfer simulates the bank acknowledging a manual transfer.
func (uc *OrderUC) ConfirmBankTransfer(ctx context.Context, number, confirmation string) (*domain.Order, bool, error) {
	if strings.TrimSpace(number) == "" {
		return nil, false, domain.Validation("Número de pedido requerido")
	}
	o, err := uc.Orders.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.NotFound("Pedido no encontrado")
		}
		return nil, false, err
	}
	confirmed := confirmation == "confirmado"
	if confirmed {
		o.Status = domain.OrderStatusPaid
	} else {
		o.Status = domain.OrderStatusPendingPayment
	}
	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, false, err
	}
	return o, confirmed, nil
}

// SetStatus is the admin override: the value must belong to the status enum
// but no transition graph is enforced.
func (uc *OrderUC) SetStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error) {
	st, ok := domain.ParseOrderStatus(status)
	if !ok {
		return nil, domain.Validation("Estado inválido")
	}
	o, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Pedido no encontrado")
		}
		return nil, err
	}
	o.Status = st
	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *OrderUC) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	o, err := uc.Orders.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Pedido no encontrado")
		}
		return nil, err
	}
	return o, nil
}

func (uc *OrderUC) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return uc.Orders.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (uc *OrderUC) ListAll(ctx context.Context) ([]domain.Order, error) {
	return uc.Orders.ListAll(ctx)
}
