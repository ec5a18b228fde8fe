package handlers

import (
	"context"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/services"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// VariantReader serves formatted variants
type VariantReader interface {
	List(ctx context.Context, page, limit int, channelID *int) (*services.VariantPage, error)
	FormattedByIDs(ctx context.Context, ids []int) ([]models.FormattedVariant, error)
	UpdateSafeStock(ctx context.Context, variantID int, update models.SafeStockUpdate) (*models.SafeStock, error)
}

// FormattedByIDsRequest is the body of POST /variants/formatted-by-ids
type FormattedByIDsRequest struct {
	IDs []int `json:"ids" binding:"required,min=1,max=100,dive,gt=0"`
}

// VariantHandler handles variant reads and safe stock updates
type VariantHandler struct {
	variants VariantReader
	country  config.CountryConfig
}

// NewVariantHandler creates a new variant handler
func NewVariantHandler(variants VariantReader, country config.CountryConfig) *VariantHandler {
	return &VariantHandler{variants: variants, country: country}
}

// List returns a page of formatted variants
func (h *VariantHandler) List(c *gin.Context) {
	page, limit := 1, defaultPageLimit
	var ok bool

	if raw := c.Query("page"); raw != "" {
		if page, ok = positiveInt(raw); !ok {
			errorResponse(c, http.StatusBadRequest, "page must be a positive integer")
			return
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, ok = positiveInt(raw); !ok || limit > maxPageLimit {
			errorResponse(c, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
	}

	if page > math.MaxInt/limit {
		errorResponse(c, http.StatusBadRequest, "page is out of range")
		return
	}

	var channelID *int
	if raw := c.Query("channel_id"); raw != "" {
		id, ok := positiveInt(raw)
		if !ok || !h.country.HasChannel(id) {
			errorResponse(c, http.StatusBadRequest, "channel_id is not a configured channel")
			return
		}
		channelID = &id
	}

	result, err := h.variants.List(c.Request.Context(), page, limit, channelID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FormattedByIDs returns the formatted variants of an id set
func (h *VariantHandler) FormattedByIDs(c *gin.Context) {
	var req FormattedByIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "ids must be a list of 1 to 100 positive integers")
		return
	}

	variants, err := h.variants.FormattedByIDs(c.Request.Context(), req.IDs)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, variants)
}

// UpdateSafeStock forwards a safe stock change to the inventory service
func (h *VariantHandler) UpdateSafeStock(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var update models.SafeStockUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if update.SafetyStock == nil && update.WarningLevel == nil && update.BinPickingNumber == nil {
		errorResponse(c, http.StatusBadRequest, "nothing to update")
		return
	}
	if (update.SafetyStock != nil && *update.SafetyStock < 0) || (update.WarningLevel != nil && *update.WarningLevel < 0) {
		errorResponse(c, http.StatusBadRequest, "stock levels must not be negative")
		return
	}

	stock, err := h.variants.UpdateSafeStock(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}
