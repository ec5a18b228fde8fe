package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/logging"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/services"
)

// Syncer runs sync sweeps against the remote catalog
type Syncer interface {
	SyncBrands(ctx context.Context) (*models.SyncResult, error)
	SyncCategories(ctx context.Context) (*models.SyncResult, error)
	SyncChannelProducts(ctx context.Context, channelID int) (*models.SyncResult, error)
}

// SyncHandler handles the on-demand sync triggers
type SyncHandler struct {
	service       Syncer
	country       config.CountryConfig
	partialStatus int
}

// NewSyncHandler creates a new sync handler. partialStatus is answered when
// a run completes with item failures.
func NewSyncHandler(service Syncer, country config.CountryConfig, partialStatus int) *SyncHandler {
	if partialStatus == 0 {
		partialStatus = http.StatusOK
	}
	return &SyncHandler{
		service:       service,
		country:       country,
		partialStatus: partialStatus,
	}
}

// SyncBrands mirrors every remote brand
func (h *SyncHandler) SyncBrands(c *gin.Context) {
	result, err := h.service.SyncBrands(c.Request.Context())
	h.respond(c, result, err)
}

// SyncCategories mirrors every remote category
func (h *SyncHandler) SyncCategories(c *gin.Context) {
	result, err := h.service.SyncCategories(c.Request.Context())
	h.respond(c, result, err)
}

// SyncChannelProducts mirrors the products assigned to one channel
func (h *SyncHandler) SyncChannelProducts(c *gin.Context) {
	channelID, ok := idParam(c, "channel_id")
	if !ok {
		return
	}
	if !h.country.HasChannel(channelID) {
		errorResponse(c, http.StatusBadRequest, "channel_id is not a configured channel")
		return
	}

	result, err := h.service.SyncChannelProducts(c.Request.Context(), channelID)
	h.respond(c, result, err)
}

func (h *SyncHandler) respond(c *gin.Context, result *models.SyncResult, err error) {
	if err != nil {
		var fatal *services.FatalSyncError
		switch {
		case errors.Is(err, services.ErrSyncInProgress):
			errorResponse(c, http.StatusConflict, err.Error())
		case errors.As(err, &fatal):
			logging.FromContext(c.Request.Context()).WithError(err).WithField("entity", fatal.Entity).Error("sync aborted")
			errorResponse(c, http.StatusInternalServerError, fatal.Error())
		default:
			handleError(c, err)
		}
		return
	}

	if !result.Success {
		c.JSON(h.partialStatus, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
