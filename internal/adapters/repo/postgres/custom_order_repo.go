package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/estilourbano/tienda/internal/domain"
)

type CustomOrderRepo struct{ db *gorm.DB }

func NewCustomOrderRepo(db *gorm.DB) *CustomOrderRepo { return &CustomOrderRepo{db: db} }

func (r *CustomOrderRepo) Create(ctx context.Context, o *domain.CustomOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

func (r *CustomOrderRepo) Save(ctx context.Context, o *domain.CustomOrder) error {
	return r.db.WithContext(ctx).Omit("Items").Save(o).Error
}

func (r *CustomOrderRepo) FindByNumber(ctx context.Context, number string) (*domain.CustomOrder, error) {
	var o domain.CustomOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *CustomOrderRepo) ListAll(ctx context.Context) ([]domain.CustomOrder, error) {
	var list []domain.CustomOrder
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CustomOrderRepo) Delete(ctx context.Context, o *domain.CustomOrder) error {
	// child items first, then the header, to satisfy the FK
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("custom_order_id = ?", o.ID).Delete(&domain.CustomOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.CustomOrder{}, "id = ?", o.ID).Error
	})
}
