package repository

import (
	"context"

	"carshop/internal/domain/model"
)

type BrandRepository interface {
	Create(ctx context.Context, brand model.Brand) (int64, error)
	FindByID(ctx context.Context, brandID int64) (model.Brand, error)
	List(ctx context.Context) ([]model.Brand, error)
	Update(ctx context.Context, brand model.Brand) error
	DeleteByID(ctx context.Context, brandID int64) error
}

type CarModelRepository interface {
	Create(ctx context.Context, m model.CarModel) (int64, error)
	FindByID(ctx context.Context, modelID int64) (model.CarModel, error)
	// brandID=nil で全件
	List(ctx context.Context, brandID *int64) ([]model.CarModel, error)
	Update(ctx context.Context, m model.CarModel) error
	DeleteByID(ctx context.Context, modelID int64) error
}

// GET /products の絞り込み
type ProductListQuery struct {
	Page     int
	Limit    int
	BrandID  *int64
	ModelID  *int64
	YearFrom *int
	YearTo   *int
	MinPrice *int64
	MaxPrice *int64
	Sort     string // "", "new", "price_asc", "price_desc"
}

type ProductRepository interface {
	Create(ctx context.Context, p model.Product) (int64, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	// 合計計算用の一括取得。見つかった分だけ返す（欠けの検出はusecase側）
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	Update(ctx context.Context, p model.Product) error
	DeleteByID(ctx context.Context, productID int64) error
}
