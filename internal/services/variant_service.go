package services

import (
	"context"
	"fmt"

	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/repository"
)

// VariantReader reads stored variants with their parent products
type VariantReader interface {
	List(ctx context.Context, query repository.VariantQuery) ([]models.Variant, int64, error)
	ListByIDs(ctx context.Context, ids []int) ([]models.Variant, error)
	GetByID(ctx context.Context, id int) (*models.Variant, error)
}

// SafeStockUpdater writes safe stock to the inventory service
type SafeStockUpdater interface {
	UpdateSafeStock(ctx context.Context, id, locationID int, update models.SafeStockUpdate) (*models.SafeStock, error)
}

// Pagination describes one page of a listing
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// VariantPage is a page of formatted variants
type VariantPage struct {
	Data       []models.FormattedVariant `json:"data"`
	Pagination Pagination                `json:"pagination"`
}

// VariantService serves formatted, optionally enriched, variants
type VariantService struct {
	repo       VariantReader
	formatter  *VariantFormatter
	enricher   *Enricher
	inventory  SafeStockUpdater
	locationID int
}

// NewVariantService creates a new variant service. enricher and inventory
// may be nil.
func NewVariantService(repo VariantReader, formatter *VariantFormatter, enricher *Enricher, inventory SafeStockUpdater, locationID int) *VariantService {
	return &VariantService{
		repo:       repo,
		formatter:  formatter,
		enricher:   enricher,
		inventory:  inventory,
		locationID: locationID,
	}
}

// List returns one page of formatted variants, optionally only those whose
// product is assigned to channelID
func (s *VariantService) List(ctx context.Context, page, limit int, channelID *int) (*VariantPage, error) {
	variants, total, err := s.repo.List(ctx, repository.VariantQuery{Page: page, Limit: limit, ChannelID: channelID})
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}

	formatted := s.formatter.Format(ctx, variants)
	s.enricher.Enrich(ctx, formatted)

	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &VariantPage{
		Data: formatted,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// FormattedByIDs returns the formatted variants among ids that exist
func (s *VariantService) FormattedByIDs(ctx context.Context, ids []int) ([]models.FormattedVariant, error) {
	variants, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list variants by id: %w", err)
	}

	formatted := s.formatter.Format(ctx, variants)
	s.enricher.Enrich(ctx, formatted)
	return formatted, nil
}

// UpdateSafeStock forwards a safe stock change of a known variant to the
// inventory service
func (s *VariantService) UpdateSafeStock(ctx context.Context, variantID int, update models.SafeStockUpdate) (*models.SafeStock, error) {
	if s.inventory == nil {
		return nil, fmt.Errorf("inventory service not configured")
	}
	if _, err := s.repo.GetByID(ctx, variantID); err != nil {
		return nil, err
	}
	return s.inventory.UpdateSafeStock(ctx, variantID, s.locationID, update)
}
