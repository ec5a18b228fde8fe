package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"catalog-sync-service/internal/models"
)

// VariantQuery selects a page of variants, optionally restricted to the
// products assigned to one channel
type VariantQuery struct {
	Page      int
	Limit     int
	ChannelID *int
}

// Offset returns the row offset of the page
func (q VariantQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// VariantRepository reads variants with their parent products
type VariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository creates a new variant repository
func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

// readCommitted runs fn in a read-committed transaction
func (r *VariantRepository) readCommitted(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return classify(r.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelReadCommitted}))
}

// List returns one page of variants ordered by id and the total matching count
func (r *VariantRepository) List(ctx context.Context, query VariantQuery) ([]models.Variant, int64, error) {
	var variants []models.Variant
	var total int64

	err := r.readCommitted(ctx, func(tx *gorm.DB) error {
		scope := tx.Model(&models.Variant{})
		if query.ChannelID != nil {
			assigned := tx.Model(&models.ChannelProduct{}).
				Select("product_id").
				Where("channel_id = ?", *query.ChannelID)
			scope = scope.Where("variants.product_id IN (?)", assigned)
		}
		scope = scope.Session(&gorm.Session{})

		if err := scope.Count(&total).Error; err != nil {
			return err
		}

		return scope.
			Preload("Product").
			Order("variants.id").
			Limit(query.Limit).
			Offset(query.Offset()).
			Find(&variants).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return variants, total, nil
}

// ListByIDs returns the variants with the given ids, ordered by id. Unknown
// ids are ignored.
func (r *VariantRepository) ListByIDs(ctx context.Context, ids []int) ([]models.Variant, error) {
	var variants []models.Variant
	if len(ids) == 0 {
		return variants, nil
	}

	err := r.readCommitted(ctx, func(tx *gorm.DB) error {
		return tx.Preload("Product").
			Where("id IN ?", ids).
			Order("id").
			Find(&variants).Error
	})
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// GetByID retrieves one variant
func (r *VariantRepository) GetByID(ctx context.Context, id int) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &variant, nil
}
