package repository

import (
	"context"
	"time"

	"carshop/internal/domain/model"
)

// SalesStatsFilter は売上統計の絞り込み条件。
// Status はポインタ（0 = WAITING_DISCOUNT_APPROVAL も有効な絞り込み値のため）。
type SalesStatsFilter struct {
	From    time.Time
	Till    time.Time
	Status  *model.OrderStatus
	BrandID *int64
	ModelID *int64
}

type OrderRepository interface {
	// hydrate=true で明細＋商品＋ブランド＋車種までpreloadする（opt-in）
	FindByID(ctx context.Context, orderID int64, hydrate bool) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, hydrate bool) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	// 合計・ステータスの更新（明細はOrderItemRepositoryで差し替える）
	Update(ctx context.Context, order model.Order) error
	// 採番用。既存注文の総数
	CountAll(ctx context.Context) (int64, error)
	// 統計用。期間・ステータス・ブランド・車種で絞ってcreated_at昇順
	ListForStats(ctx context.Context, f SalesStatsFilter) ([]model.Order, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
