package repository

import (
	"context"

	"gorm.io/gorm"

	"catalog-sync-service/internal/models"
)

// BrandRepository handles brand persistence
type BrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// Upsert creates the brand or updates its name
func (r *BrandRepository) Upsert(ctx context.Context, brand *models.Brand) error {
	return upsert(r.db.WithContext(ctx), brand, "id")
}

// List returns all brands ordered by id
func (r *BrandRepository) List(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("id").Find(&brands).Error; err != nil {
		return nil, classify(err)
	}
	return brands, nil
}

// GetByID retrieves a brand
func (r *BrandRepository) GetByID(ctx context.Context, id int) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &brand, nil
}

// CountProducts returns how many products reference the brand
func (r *BrandRepository) CountProducts(ctx context.Context, brandID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("brand_id = ?", brandID).
		Count(&count).Error
	if err != nil {
		return 0, classify(err)
	}
	return count, nil
}
