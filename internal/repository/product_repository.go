package repository

import (
	"context"

	"gorm.io/gorm"

	"catalog-sync-service/internal/models"
)

// ProductGraph is everything one channel-product sync writes for a product
type ProductGraph struct {
	Product     *models.Product
	Variants    []models.Variant
	CategoryIDs []int
	FilterIDs   []int
	Channel     models.Channel
}

// ProductRepository handles product persistence
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// UpsertGraph writes a product, its variants, its category and filter links,
// its channel and its channel assignment in a single transaction
func (r *ProductRepository) UpsertGraph(ctx context.Context, graph *ProductGraph) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsert(tx, graph.Product, "id"); err != nil {
			return err
		}

		if len(graph.Variants) > 0 {
			if err := upsert(tx, &graph.Variants, "id"); err != nil {
				return err
			}
		}

		if len(graph.CategoryIDs) > 0 {
			links := make([]models.CategoryProduct, 0, len(graph.CategoryIDs))
			for _, categoryID := range uniqueInts(graph.CategoryIDs) {
				links = append(links, models.CategoryProduct{ProductID: graph.Product.ID, CategoryID: categoryID})
			}
			if err := insertIgnore(tx, &links, "product_id", "category_id"); err != nil {
				return err
			}
		}

		if len(graph.FilterIDs) > 0 {
			links := make([]models.FiltersProduct, 0, len(graph.FilterIDs))
			for _, categoryID := range uniqueInts(graph.FilterIDs) {
				links = append(links, models.FiltersProduct{ProductID: graph.Product.ID, CategoryID: categoryID})
			}
			if err := insertIgnore(tx, &links, "product_id", "category_id"); err != nil {
				return err
			}
		}

		if err := upsert(tx, &graph.Channel, "id"); err != nil {
			return err
		}

		assignment := models.ChannelProduct{ChannelID: graph.Channel.ID, ProductID: graph.Product.ID}
		return insertIgnore(tx, &assignment, "channel_id", "product_id")
	})
	return classify(err)
}

// List returns all products with brand and variants
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("variants.id") }).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, classify(err)
	}
	return products, nil
}

// GetByID retrieves a product with brand, variants, categories and channels
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("variants.id") }).
		Preload("Categories").
		Preload("Channels").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &product, nil
}

func uniqueInts(values []int) []int {
	seen := make(map[int]bool, len(values))
	out := make([]int, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
