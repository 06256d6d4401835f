package usecase

import (
	"context"
	"net/http"
	"strings"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"
)

// CatalogUsecase はブランドと車種のCRUD。
type CatalogUsecase struct {
	brandRepo repo.BrandRepository
	modelRepo repo.CarModelRepository
}

func NewCatalogUsecase(brandRepo repo.BrandRepository, modelRepo repo.CarModelRepository) *CatalogUsecase {
	return &CatalogUsecase{brandRepo: brandRepo, modelRepo: modelRepo}
}

type BrandInput struct {
	Name string
}

func (u *CatalogUsecase) CreateBrand(ctx context.Context, in BrandInput) (model.Brand, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	id, err := u.brandRepo.Create(ctx, model.Brand{Name: name})
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	b, err := u.brandRepo.FindByID(ctx, id)
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return b, nil
}

func (u *CatalogUsecase) ListBrands(ctx context.Context) ([]model.Brand, error) {
	items, err := u.brandRepo.List(ctx)
	if err != nil {
		return []model.Brand{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return items, nil
}

func (u *CatalogUsecase) UpdateBrand(ctx context.Context, brandID int64, in BrandInput) (model.Brand, error) {
	if brandID <= 0 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	if err := u.brandRepo.Update(ctx, model.Brand{ID: brandID, Name: name}); err != nil {
		if err == repo.ErrNotFound {
			return model.Brand{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	b, err := u.brandRepo.FindByID(ctx, brandID)
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return b, nil
}

func (u *CatalogUsecase) DeleteBrand(ctx context.Context, brandID int64) error {
	if brandID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.brandRepo.DeleteByID(ctx, brandID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		return NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return nil
}

type CarModelInput struct {
	BrandID int64
	Name    string
}

func (u *CatalogUsecase) CreateCarModel(ctx context.Context, in CarModelInput) (model.CarModel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return model.CarModel{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.BrandID <= 0 {
		return model.CarModel{}, NewHTTPError(http.StatusBadRequest, "invalid brand_id")
	}

	//親ブランドの存在確認
	if _, err := u.brandRepo.FindByID(ctx, in.BrandID); err != nil {
		if err == repo.ErrNotFound {
			return model.CarModel{}, NewHTTPError(http.StatusBadRequest, "invalid brand_id")
		}
		return model.CarModel{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	id, err := u.modelRepo.Create(ctx, model.CarModel{BrandID: in.BrandID, Name: name})
	if err != nil {
		return model.CarModel{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	m, err := u.modelRepo.FindByID(ctx, id)
	if err != nil {
		return model.CarModel{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return m, nil
}

func (u *CatalogUsecase) ListCarModels(ctx context.Context, brandID *int64) ([]model.CarModel, error) {
	items, err := u.modelRepo.List(ctx, brandID)
	if err != nil {
		return []model.CarModel{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return items, nil
}

func (u *CatalogUsecase) UpdateCarModel(ctx context.Context, modelID int64, in CarModelInput) (model.CarModel, error) {
	if modelID <= 0 {
		return model.CarModel{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return model.CarModel{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.BrandID <= 0 {
		return model.CarModel{}, NewHTTPError(http.StatusBadRequest, "invalid brand_id")
	}

	if err := u.modelRepo.Update(ctx, model.CarModel{ID: modelID, BrandID: in.BrandID, Name: name}); err != nil {
		if err == repo.ErrNotFound {
			return model.CarModel{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		return model.CarModel{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}

	m, err := u.modelRepo.FindByID(ctx, modelID)
	if err != nil {
		return model.CarModel{}, NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return m, nil
}

func (u *CatalogUsecase) DeleteCarModel(ctx context.Context, modelID int64) error {
	if modelID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.modelRepo.DeleteByID(ctx, modelID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, MsgNotFound)
		}
		return NewHTTPError(http.StatusInternalServerError, MsgDBError)
	}
	return nil
}
