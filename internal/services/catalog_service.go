package services

import (
	"context"

	"catalog-sync-service/internal/models"
)

// ProductReader reads stored products
type ProductReader interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
}

// CategoryReader reads stored categories
type CategoryReader interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int) (*models.Category, error)
}

// BrandReader reads stored brands
type BrandReader interface {
	List(ctx context.Context) ([]models.Brand, error)
	GetByID(ctx context.Context, id int) (*models.Brand, error)
	CountProducts(ctx context.Context, brandID int) (int64, error)
}

// CatalogService serves the mirrored products, categories and brands
type CatalogService struct {
	products   ProductReader
	categories CategoryReader
	brands     BrandReader
}

// NewCatalogService creates a new catalog service
func NewCatalogService(products ProductReader, categories CategoryReader, brands BrandReader) *CatalogService {
	return &CatalogService{products: products, categories: categories, brands: brands}
}

// ListProducts returns every product with brand and variants
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct returns one product
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListCategories returns every category in tree order
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// GetCategory returns one category
func (s *CatalogService) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// ListBrands returns every brand ordered by id
func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	return brands, nil
}

// BrandProductCount is the number of products of a brand
type BrandProductCount struct {
	BrandID  int    `json:"brand_id"`
	Name     string `json:"name"`
	Products int64  `json:"products"`
}

// CountBrandProducts returns how many products reference a known brand
func (s *CatalogService) CountBrandProducts(ctx context.Context, brandID int) (*BrandProductCount, error) {
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	count, err := s.brands.CountProducts(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return &BrandProductCount{BrandID: brand.ID, Name: brand.Name, Products: count}, nil
}
