package model

import (
	"time"

	"gorm.io/gorm"
)

// Brand はメーカー（Toyota / BMW など）。
type Brand struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// CarModel はブランド配下の車種。
type CarModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BrandID   int64     `gorm:"not null;index" json:"brand_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Brand *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// Product は販売中の車両。
// Price は注文作成・更新のタイミングで読み、明細にスナップショットする。
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	BrandID     int64          `gorm:"not null;index" json:"brand_id"`
	ModelID     int64          `gorm:"not null;index" json:"model_id"`
	Year        int            `gorm:"not null" json:"year"`
	Color       string         `gorm:"type:varchar(50);not null" json:"color"`
	Price       int64          `gorm:"not null" json:"price"`
	Warranty    int            `gorm:"not null" json:"warranty"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	CarModel *CarModel `gorm:"foreignKey:ModelID" json:"model,omitempty"`
}
