package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/services"
)

// CatalogReader serves the mirrored catalog
type CatalogReader interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	CountBrandProducts(ctx context.Context, brandID int) (*services.BrandProductCount, error)
}

// CatalogHandler handles product, category and brand reads
type CatalogHandler struct {
	catalog CatalogReader
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts returns every product
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListCategories returns every category
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory returns a single category
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListBrands returns every brand
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.catalog.ListBrands(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

// CountBrandProducts returns how many products a brand has
func (h *CatalogHandler) CountBrandProducts(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	count, err := h.catalog.CountBrandProducts(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}
