package model

import "time"

// カートの明細。ユーザーごとに同一商品は1行（数量で管理）。
// 価格はカートでは持たない。注文確定のタイミングで現在価格を読む。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID int64     `gorm:"not null;index:idx_cart_user_product,unique" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
