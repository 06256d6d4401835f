package model

import (
	"fmt"
	"time"
)

// OrderStatus は注文ステータス。
// 番号は外部仕様なので明示的に固定する（宣言順に依存しない）。
type OrderStatus int

const (
	OrderStatusWaitingDiscountApproval OrderStatus = 0
	OrderStatusInProgress              OrderStatus = 1
	OrderStatusPurchased               OrderStatus = 2
	OrderStatusDeclined                OrderStatus = 3
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusWaitingDiscountApproval:
		return "WAITING_DISCOUNT_APPROVAL"
	case OrderStatusInProgress:
		return "IN_PROGRESS"
	case OrderStatusPurchased:
		return "PURCHASED"
	case OrderStatusDeclined:
		return "DECLINED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusWaitingDiscountApproval, OrderStatusInProgress, OrderStatusPurchased, OrderStatusDeclined:
		return true
	}
	return false
}

// ParseOrderStatus は文字列表現からステータスへ変換する。
func ParseOrderStatus(v string) (OrderStatus, bool) {
	switch v {
	case "WAITING_DISCOUNT_APPROVAL":
		return OrderStatusWaitingDiscountApproval, true
	case "IN_PROGRESS":
		return OrderStatusInProgress, true
	case "PURCHASED":
		return OrderStatusPurchased, true
	case "DECLINED":
		return OrderStatusDeclined, true
	}
	return 0, false
}

// Order は注文。TotalAmount/TotalSum/OrderNo はusecaseが作成・更新時に計算する。
// OrderNo は作成時に一度だけ採番して以後変更しない。
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64       `gorm:"not null;index" json:"user_id"`
	OrderNo     int64       `gorm:"not null" json:"order_no"`
	Status      OrderStatus `gorm:"type:smallint;not null;index" json:"status"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`
	TotalSum    int64       `gorm:"not null" json:"total_sum"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}
