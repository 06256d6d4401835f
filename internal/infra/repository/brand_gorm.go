package repository

import (
	"context"
	"errors"

	"carshop/internal/domain/model"
	repo "carshop/internal/repository"

	"gorm.io/gorm"
)

type BrandGormRepository struct {
	db *gorm.DB
}

func NewBrandGormRepository(db *gorm.DB) *BrandGormRepository {
	return &BrandGormRepository{db: db}
}

func (r *BrandGormRepository) Create(ctx context.Context, brand model.Brand) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&brand).Error; err != nil {
		return 0, err
	}
	return brand.ID, nil
}

func (r *BrandGormRepository) FindByID(ctx context.Context, brandID int64) (model.Brand, error) {
	var b model.Brand
	err := r.db.WithContext(ctx).Where("id = ?", brandID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Brand{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Brand{}, err
	}
	return b, nil
}

func (r *BrandGormRepository) List(ctx context.Context) ([]model.Brand, error) {
	var items []model.Brand
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Brand{}, err
	}
	return items, nil
}

func (r *BrandGormRepository) Update(ctx context.Context, brand model.Brand) error {
	res := r.db.WithContext(ctx).Model(&model.Brand{}).
		Where("id = ?", brand.ID).
		Update("name", brand.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BrandGormRepository) DeleteByID(ctx context.Context, brandID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", brandID).Delete(&model.Brand{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
