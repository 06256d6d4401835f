package repository

import (
	"context"
	"errors"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"

	"gorm.io/gorm"
)

type CarModelGormRepository struct {
	db *gorm.DB
}

func NewCarModelGormRepository(db *gorm.DB) *CarModelGormRepository {
	return &CarModelGormRepository{db: db}
}

func (r *CarModelGormRepository) Create(ctx context.Context, m model.CarModel) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *CarModelGormRepository) FindByID(ctx context.Context, modelID int64) (model.CarModel, error) {
	var m model.CarModel
	err := r.db.WithContext(ctx).Preload("Brand").Where("id = ?", modelID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CarModel{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CarModel{}, err
	}
	return m, nil
}

func (r *CarModelGormRepository) List(ctx context.Context, brandID *int64) ([]model.CarModel, error) {
	q := r.db.WithContext(ctx).Preload("Brand")
	if brandID != nil {
		q = q.Where("brand_id = ?", *brandID)
	}
	var items []model.CarModel
	if err := q.Order("name asc").Find(&items).Error; err != nil {
		return []model.CarModel{}, err
	}
	return items, nil
}

func (r *CarModelGormRepository) Update(ctx context.Context, m model.CarModel) error {
	res := r.db.WithContext(ctx).Model(&model.CarModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"brand_id": m.BrandID,
			"name":     m.Name,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CarModelGormRepository) DeleteByID(ctx context.Context, modelID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", modelID).Delete(&model.CarModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
