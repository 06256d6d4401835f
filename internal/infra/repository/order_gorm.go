package repository

import (
	"context"
	"errors"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// hydrate=true のときだけ明細→商品→ブランド/車種までpreloadする
func (r *OrderGormRepository) withHydration(q *gorm.DB, hydrate bool) *gorm.DB {
	if !hydrate {
		return q
	}
	return q.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Brand").
		Preload("Items.Product.CarModel")
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64, hydrate bool) (model.Order, error) {
	var o model.Order
	q := r.withHydration(r.db.WithContext(ctx), hydrate)
	err := q.Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, hydrate bool) ([]model.Order, error) {
	var items []model.Order
	q := r.withHydration(r.db.WithContext(ctx), hydrate)
	err := q.Where("user_id = ?", userID).Order("id desc").Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Omit("Items").Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) Update(ctx context.Context, order model.Order) error {
	// OrderNo と UserID は作成後に書き換えない
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":       order.Status,
			"total_amount": order.TotalAmount,
			"total_sum":    order.TotalSum,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *OrderGormRepository) ListForStats(ctx context.Context, f repo.SalesStatsFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("orders.created_at >= ?", f.From).
		Where("orders.created_at <= ?", f.Till)

	if f.Status != nil {
		q = q.Where("orders.status = ?", *f.Status)
	}

	// ブランド/車種は「明細のどれかが該当商品を含む」注文
	if f.BrandID != nil || f.ModelID != nil {
		sub := r.db.Model(&model.OrderItem{}).
			Select("order_items.order_id").
			Joins("JOIN products ON products.id = order_items.product_id")
		if f.BrandID != nil {
			sub = sub.Where("products.brand_id = ?", *f.BrandID)
		}
		if f.ModelID != nil {
			sub = sub.Where("products.model_id = ?", *f.ModelID)
		}
		q = q.Where("orders.id IN (?)", sub)
	}

	var items []model.Order
	err := q.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Brand").
		Preload("Items.Product.CarModel").
		Order("orders.created_at asc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}
