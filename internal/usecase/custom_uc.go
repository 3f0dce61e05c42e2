package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/estilourbano/tienda/internal/domain"
)

type CustomOrderUC struct {
	Customs domain.CustomOrderRepo
	Users   domain.UserRepo
	Storage domain.ImageStorage
}

// CustomUpload is one artwork file from the design form.
type CustomUpload struct {
	Filename string
	Data     io.Reader
}

type CustomItemInput struct {
	Color     string
	Size      string
	Text      string
	TextColor string
	// Legacy single-image submissions still arrive alongside front/back pairs.
	Image      *CustomUpload
	FrontImage *CustomUpload
	BackImage  *CustomUpload
}

// Create is phase one: artwork goes to image storage and the order is created
// in pending with no shipping data yet.
func (uc *CustomOrderUC) Create(ctx context.Context, email string, items []CustomItemInput) (*domain.CustomOrder, error) {
	if len(items) == 0 {
		return nil, domain.Validation("No hay personalizaciones para guardar")
	}

	o := &domain.CustomOrder{
		ID:     uuid.New(),
		Number: NewOrderNumber("PERS", 4),
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Status: domain.CustomOrderStatusPending,
	}
	if uc.Users != nil && o.Email != "" {
		if u, err := uc.Users.FindByEmail(ctx, o.Email); err == nil {
			o.UserID = &u.ID
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	for i, in := range items {
		item := domain.CustomOrderItem{
			ID:            uuid.New(),
			CustomOrderID: o.ID,
			Color:         in.Color,
			Size:          in.Size,
			Text:          in.Text,
			TextColor:     in.TextColor,
			Quantity:      1,
			UnitPrice:     domain.CustomItemUnitPrice,
		}
		var err error
		if item.Image, item.ImageAssetID, err = uc.upload(ctx, fmt.Sprintf("custom_%d", i), in.Image); err != nil {
			return nil, err
		}
		if item.FrontImage, item.FrontImageAssetID, err = uc.upload(ctx, fmt.Sprintf("custom_front_%d", i), in.FrontImage); err != nil {
			return nil, err
		}
		if item.BackImage, item.BackImageAssetID, err = uc.upload(ctx, fmt.Sprintf("custom_back_%d", i), in.BackImage); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	if err := uc.Customs.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *CustomOrderUC) upload(ctx context.Context, prefix string, f *CustomUpload) (string, string, error) {
	if f == nil || f.Data == nil {
		return "", "", nil
	}
	url, assetID, err := uc.Storage.Save(ctx, prefix+"_"+f.Filename, f.Data)
	if c, ok := f.Data.(io.Closer); ok {
		c.Close()
	}
	return url, assetID, err
}

type CustomCheckoutInput struct {
	Customer      *CustomerData
	PaymentMethod string
	ShippingCost  *float64
}

// Checkout is phase two: shipping data, payment method and shipping cost land
// on the order and the total is recomputed from the fixed per-item price.
func (uc *CustomOrderUC) Checkout(ctx context.Context, number string, in CustomCheckoutInput) (*domain.CustomOrder, error) {
	if strings.TrimSpace(number) == "" {
		return nil, domain.Validation("Número requerido")
	}
	o, err := uc.Customs.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Pedido no encontrado")
		}
		return nil, err
	}

	if c := in.Customer; c != nil {
		if c.Name != "" {
			o.Name = c.Name
		}
		if c.LastName != "" {
			o.LastName = c.LastName
		}
		if c.Address != "" {
			o.Address = c.Address
		}
		if c.Phone != "" {
			o.Phone = c.Phone
		}
		if c.City != "" {
			o.City = c.City
		}
		if c.Department != "" {
			o.Department = c.Department
		}
	}
	if in.PaymentMethod != "" {
		o.PaymentMethod = in.PaymentMethod
	}
	if in.ShippingCost != nil {
		o.ShippingCost = *in.ShippingCost
	} else if o.ShippingCost == 0 && o.City != "" {
		o.ShippingCost = domain.CustomShippingCostFor(o.City)
	}

	subtotal := 0.0
	for _, it := range o.Items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	o.Total = subtotal + o.ShippingCost

	if err := uc.Customs.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// CustomOrderView reshapes a personalization order into the order-like shape
// the payment-instructions page renders.
type CustomOrderView struct {
	Number       string               `json:"number"`
	Total        float64              `json:"total"`
	ShippingCost float64              `json:"shippingCost"`
	Status       string               `json:"status"`
	Items        []CustomOrderViewRow `json:"items"`
}

type CustomOrderViewRow struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

func (uc *CustomOrderUC) InstructionsView(ctx context.Context, number string) (*CustomOrderView, error) {
	o, err := uc.Customs.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Pedido no encontrado")
		}
		return nil, err
	}

	itemsTotal := 0.0
	view := &CustomOrderView{Number: o.Number, Status: o.Status}
	for _, it := range o.Items {
		itemsTotal += it.UnitPrice * float64(it.Quantity)
		view.Items = append(view.Items, CustomOrderViewRow{
			Name:      fmt.Sprintf("Camiseta personalizada (%s)", it.Size),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	view.ShippingCost = o.ShippingCost
	if view.ShippingCost == 0 {
		view.ShippingCost = domain.CustomShippingCostFor(o.City)
	}
	view.Total = o.Total
	if view.Total == 0 {
		view.Total = itemsTotal + view.ShippingCost
	}
	return view, nil
}

func (uc *CustomOrderUC) ListAll(ctx context.Context) ([]domain.CustomOrder, error) {
	return uc.Customs.ListAll(ctx)
}

// Delete hard-deletes a personalization order; the repo removes child items
// before the parent row. Hosted artwork is removed best-effort.
func (uc *CustomOrderUC) Delete(ctx context.Context, number string) error {
	if strings.TrimSpace(number) == "" {
		return domain.Validation("Número requerido")
	}
	o, err := uc.Customs.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Pedido no encontrado")
		}
		return err
	}
	if err := uc.Customs.Delete(ctx, o); err != nil {
		return err
	}
	if uc.Storage != nil {
		for _, it := range o.Items {
			for _, asset := range []string{it.ImageAssetID, it.FrontImageAssetID, it.BackImageAssetID} {
				if asset == "" {
					continue
				}
				if err := uc.Storage.Delete(ctx, asset); err != nil {
					log.Warn().Err(err).Str("asset", asset).Msg("borrar artwork")
				}
			}
		}
	}
	return nil
}
