package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"carshop/internal/domain/model"
	"carshop/internal/infra/cache"
	repo "carshop/internal/repository"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	brandRepo   repo.BrandRepository
	modelRepo   repo.CarModelRepository
	auditRepo   repo.AuditLogRepository
	cache       cache.ProductCache // nil可（キャッシュなし構成）
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	brandRepo repo.BrandRepository,
	modelRepo repo.CarModelRepository,
	auditRepo repo.AuditLogRepository,
	c cache.ProductCache,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		brandRepo:   brandRepo,
		modelRepo:   modelRepo,
		auditRepo:   auditRepo,
		cache:       c,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	BrandID  *int64
	ModelID  *int64
	YearFrom *int
	YearTo   *int
	MinPrice *int64
	MaxPrice *int64
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		BrandID:  in.BrandID,
		ModelID:  in.ModelID,
		YearFrom: in.YearFrom,
		YearTo:   in.YearTo,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// GetProductDetail は商品詳細。redisのread-throughキャッシュを通す。
func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if u.cache != nil {
		//キャッシュのエラーはミス扱いでDBへ
		if cached, err := u.cache.GetProduct(ctx, productID); err == nil && cached != nil {
			return *cached, nil
		}
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	if u.cache != nil {
		_ = u.cache.SetProduct(ctx, p)
	}
	return p, nil
}

type ProductInput struct {
	BrandID     int64
	ModelID     int64
	Year        int
	Color       string
	Price       int64
	Warranty    int
	Description string
}

func (in ProductInput) validate() error {
	if in.BrandID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid brand_id")
	}
	if in.ModelID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid model_id")
	}
	if in.Year < 1900 || in.Year > time.Now().Year()+1 {
		return NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	if in.Color == "" || len(in.Color) > 50 {
		return NewHTTPError(http.StatusBadRequest, "invalid color")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Warranty < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid warranty")
	}
	return nil
}

// 車種がブランド配下かも確認する
func (u *ProductUsecase) checkRefs(ctx context.Context, in ProductInput) error {
	if _, err := u.brandRepo.FindByID(ctx, in.BrandID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "invalid brand_id")
		}
		return NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	m, err := u.modelRepo.FindByID(ctx, in.ModelID)
	if err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "invalid model_id")
		}
		return NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	if m.BrandID != in.BrandID {
		return NewHTTPError(http.StatusBadRequest, "model does not belong to brand")
	}
	return nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, actorAdminUserID int64, in ProductInput) (model.Product, error) {
	if actorAdminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}
	if err := u.checkRefs(ctx, in); err != nil {
		return model.Product{}, err
	}

	id, err := u.productRepo.Create(ctx, model.Product{
		BrandID:     in.BrandID,
		ModelID:     in.ModelID,
		Year:        in.Year,
		Color:       in.Color,
		Price:       in.Price,
		Warranty:    in.Warranty,
		Description: in.Description,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	//監査ログ
	afterJSON, _ := json.Marshal(p)
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionCreateProduct,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   id,
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, actorAdminUserID int64, productID int64, in ProductInput) (model.Product, error) {
	if actorAdminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}
	if err := u.checkRefs(ctx, in); err != nil {
		return model.Product{}, err
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	err = u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		BrandID:     in.BrandID,
		ModelID:     in.ModelID,
		Year:        in.Year,
		Color:       in.Color,
		Price:       in.Price,
		Warranty:    in.Warranty,
		Description: in.Description,
	})
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	//価格などが変わったのでキャッシュを消す
	if u.cache != nil {
		_ = u.cache.InvalidateProduct(ctx, productID)
	}

	after, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateProduct,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	return after, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, actorAdminUserID int64, productID int64) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.productRepo.DeleteByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		return NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	if u.cache != nil {
		_ = u.cache.InvalidateProduct(ctx, productID)
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionDeleteProduct,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	return nil
}
