package repo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-eshop-api/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	// Items 由 OrderItemRepo 单独管理，这里只写父记录
	return r.db.WithContext(ctx).Omit("Items").Create(o).Error
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.expanded(ctx).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	var os []domain.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("date_ordered DESC").
		Find(&os).Error
	return os, err
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var os []domain.Order
	err := r.expanded(ctx).
		Where("user_id = ?", userID).
		Order("date_ordered DESC").
		Find(&os).Error
	return os, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&n).Error
	return n, err
}

func (r *OrderRepo) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var out struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("COALESCE(SUM(total_price), 0) AS total").
		Scan(&out).Error
	return out.Total, err
}

func (r *OrderRepo) expanded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Items.Product").
		Preload("Items.Product.Category")
}

type OrderItemRepo struct{ db *gorm.DB }

func NewOrderItemRepo(db *gorm.DB) *OrderItemRepo { return &OrderItemRepo{db: db} }

func (r *OrderItemRepo) Create(ctx context.Context, item *domain.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *OrderItemRepo) FindWithProduct(ctx context.Context, id string) (*domain.OrderItem, error) {
	var item domain.OrderItem
	err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *OrderItemRepo) AttachOrder(ctx context.Context, itemIDs []string, orderID string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Where("id IN ?", itemIDs).
		Update("order_id", orderID).Error
}

func (r *OrderItemRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.OrderItem{}).Error
}
