package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog-sync-service/internal/logging"
	"catalog-sync-service/internal/models"
)

const (
	categoryCachePrefix = "catalog:categories:"
	categoryListKey     = categoryCachePrefix + "list"

	// DefaultCategoryCacheTTL is used when no TTL is configured
	DefaultCategoryCacheTTL = 15 * time.Minute
)

// CategoryRepository handles category persistence with an optional Redis
// read-through cache
type CategoryRepository struct {
	db       *gorm.DB
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewCategoryRepository creates a new category repository. redisClient may be nil.
func NewCategoryRepository(db *gorm.DB, redisClient *redis.Client, cacheTTL time.Duration) *CategoryRepository {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCategoryCacheTTL
	}
	return &CategoryRepository{db: db, redis: redisClient, cacheTTL: cacheTTL}
}

// Upsert creates the category or updates it by category_id
func (r *CategoryRepository) Upsert(ctx context.Context, category *models.Category) error {
	return upsert(r.db.WithContext(ctx), category, "category_id")
}

// List returns all categories in tree order
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if r.getCached(ctx, categoryListKey, &categories) {
		return categories, nil
	}

	err := r.db.WithContext(ctx).
		Order("parent_id").
		Order("sort_order").
		Order("category_id").
		Find(&categories).Error
	if err != nil {
		return nil, classify(err)
	}

	r.setCached(ctx, categoryListKey, categories)
	return categories, nil
}

// GetByID retrieves a category
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	cacheKey := fmt.Sprintf("%sid:%d", categoryCachePrefix, id)

	var category models.Category
	if r.getCached(ctx, cacheKey, &category) {
		return &category, nil
	}

	if err := r.db.WithContext(ctx).First(&category, "category_id = ?", id).Error; err != nil {
		return nil, classify(err)
	}

	r.setCached(ctx, cacheKey, category)
	return &category, nil
}

// InvalidateCache drops every cached category entry
func (r *CategoryRepository) InvalidateCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	keys, err := r.redis.Keys(ctx, categoryCachePrefix+"*").Result()
	if err != nil {
		logging.FromContext(ctx).WithError(err).Warn("failed to list category cache keys")
		return
	}
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

func (r *CategoryRepository) getCached(ctx context.Context, key string, out interface{}) bool {
	if r.redis == nil {
		return false
	}
	val, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (r *CategoryRepository) setCached(ctx context.Context, key string, value interface{}) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.redis.Set(ctx, key, data, r.cacheTTL)
}
