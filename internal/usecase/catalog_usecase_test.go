package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"
	"carshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCatalogUsecase() (*usecase.CatalogUsecase, *BrandRepoMock, *CarModelRepoMock) {
	brands := &BrandRepoMock{}
	models := &CarModelRepoMock{}
	return usecase.NewCatalogUsecase(brands, models), brands, models
}

func TestCatalogUsecase_CreateBrand_TrimsName(t *testing.T) {
	uc, brands, _ := newCatalogUsecase()

	brands.On("Create", mock.Anything, model.Brand{Name: "Toyota"}).Return(int64(1), nil)
	brands.On("FindByID", mock.Anything, int64(1)).Return(model.Brand{ID: 1, Name: "Toyota"}, nil)

	b, err := uc.CreateBrand(context.Background(), usecase.BrandInput{Name: "  Toyota  "})

	assert.NoError(t, err)
	assert.Equal(t, "Toyota", b.Name)
}

func TestCatalogUsecase_CreateBrand_EmptyName(t *testing.T) {
	uc, brands, _ := newCatalogUsecase()

	_, err := uc.CreateBrand(context.Background(), usecase.BrandInput{Name: "   "})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	brands.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogUsecase_CreateCarModel_UnknownBrand(t *testing.T) {
	uc, brands, models := newCatalogUsecase()

	brands.On("FindByID", mock.Anything, int64(9)).Return(model.Brand{}, repo.ErrNotFound)

	_, err := uc.CreateCarModel(context.Background(), usecase.CarModelInput{BrandID: 9, Name: "Corolla"})

	assertErrContains(t, err, "invalid brand_id")
	models.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogUsecase_CreateCarModel_Success(t *testing.T) {
	uc, brands, models := newCatalogUsecase()

	brands.On("FindByID", mock.Anything, int64(1)).Return(model.Brand{ID: 1}, nil)
	models.On("Create", mock.Anything, model.CarModel{BrandID: 1, Name: "Corolla"}).Return(int64(2), nil)
	models.On("FindByID", mock.Anything, int64(2)).Return(model.CarModel{ID: 2, BrandID: 1, Name: "Corolla"}, nil)

	m, err := uc.CreateCarModel(context.Background(), usecase.CarModelInput{BrandID: 1, Name: "Corolla"})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), m.ID)
	assert.Equal(t, int64(1), m.BrandID)
}

func TestCatalogUsecase_UpdateBrand_NotFound(t *testing.T) {
	uc, brands, _ := newCatalogUsecase()

	brands.On("Update", mock.Anything, mock.Anything).Return(repo.ErrNotFound)

	_, err := uc.UpdateBrand(context.Background(), 9, usecase.BrandInput{Name: "Honda"})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestCatalogUsecase_ListCarModels_FilterByBrand(t *testing.T) {
	uc, _, models := newCatalogUsecase()

	brandID := int64(1)
	models.On("List", mock.Anything, &brandID).Return([]model.CarModel{
		{ID: 2, BrandID: 1, Name: "Corolla"},
	}, nil)

	items, err := uc.ListCarModels(context.Background(), &brandID)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCatalogUsecase_DeleteCarModel_NotFound(t *testing.T) {
	uc, _, models := newCatalogUsecase()

	models.On("DeleteByID", mock.Anything, int64(2)).Return(repo.ErrNotFound)

	err := uc.DeleteCarModel(context.Background(), 2)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
