package model

import "time"

type AuditAction string

const (
	AuditActionUpdateOrder   AuditAction = "UPDATE_ORDER"
	AuditActionCreateProduct AuditAction = "CREATE_PRODUCT"
	AuditActionUpdateProduct AuditAction = "UPDATE_PRODUCT"
	AuditActionDeleteProduct AuditAction = "DELETE_PRODUCT"
)

type AuditResource string

const (
	AuditResourceOrder   AuditResource = "ORDER"
	AuditResourceProduct AuditResource = "PRODUCT"
)

// 管理者操作の監査ログ。
type AuditLog struct {
	ID           int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64         `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction   `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResource `gorm:"type:varchar(50);not null" json:"resource_type"`
	ResourceID   int64         `gorm:"not null;index" json:"resource_id"`
	BeforeJSON   string        `gorm:"type:text" json:"before_json"`
	AfterJSON    string        `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}
