package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/estilourbano/tienda/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
	Storage  domain.ImageStorage
}

func (uc *ProductUC) List(ctx context.Context) ([]domain.Product, error) {
	return uc.Products.List(ctx)
}

func (uc *ProductUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Producto no encontrado")
		}
		return nil, err
	}
	return p, nil
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Validation("Nombre requerido")
	}
	if p.Price < 0 {
		return domain.Validation("Precio inválido")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return uc.Products.Save(ctx, p)
}

// Update applies a partial patch; omitted fields keep their stored values.
func (uc *ProductUC) Update(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Producto no encontrado")
		}
		return nil, err
	}
	if patch.Name != nil && *patch.Name != "" {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil && *patch.Price > 0 {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.ImageAssetID != nil {
		p.ImageAssetID = *patch.ImageAssetID
	}
	if patch.Sizes != nil {
		p.Sizes = patch.Sizes
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the product row and best-effort deletes its hosted image; a
// storage failure is logged but never blocks the deletion.
func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Producto no encontrado")
		}
		return err
	}
	if p.ImageAssetID != "" && uc.Storage != nil {
		if err := uc.Storage.Delete(ctx, p.ImageAssetID); err != nil {
			log.Warn().Err(err).Str("asset", p.ImageAssetID).Msg("borrar imagen de producto")
		}
	}
	return uc.Products.Delete(ctx, id)
}
