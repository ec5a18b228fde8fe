package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"catalog-sync-service/internal/clients"
	"catalog-sync-service/internal/clients/bigcommerce"
	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/logging"
	"catalog-sync-service/internal/metrics"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/repository"
)

// CatalogSource is the remote catalog the reconciler pulls from
type CatalogSource interface {
	ListBrandsPage(ctx context.Context, page, limit int) (*bigcommerce.Page[bigcommerce.Brand], error)
	ListCategoriesPage(ctx context.Context, page, limit int) (*bigcommerce.Page[bigcommerce.Category], error)
	ListChannelProductPage(ctx context.Context, channelID, page, limit int) (*bigcommerce.Page[bigcommerce.ChannelAssignment], error)
	GetProduct(ctx context.Context, productID int) (*bigcommerce.Product, error)
	GetProductOptions(ctx context.Context, productID int) ([]bigcommerce.Option, error)
}

// BrandStore persists brands
type BrandStore interface {
	Upsert(ctx context.Context, brand *models.Brand) error
}

// CategoryStore persists categories
type CategoryStore interface {
	Upsert(ctx context.Context, category *models.Category) error
	InvalidateCache(ctx context.Context)
}

// ProductGraphStore persists a product with everything hanging off it
type ProductGraphStore interface {
	UpsertGraph(ctx context.Context, graph *repository.ProductGraph) error
}

// FatalSyncError aborts a whole sync run: the remote listing could not be
// fetched or the schema rejected a write
type FatalSyncError struct {
	Entity models.SyncEntity
	Err    error
}

func (e *FatalSyncError) Error() string {
	return fmt.Sprintf("sync of %s aborted: %v", e.Entity, e.Err)
}

func (e *FatalSyncError) Unwrap() error {
	return e.Err
}

// SyncService reconciles the local catalog with BigCommerce
type SyncService struct {
	source     CatalogSource
	brands     BrandStore
	categories CategoryStore
	products   ProductGraphStore
	mapper     *SchemaMapper
	retrier    *clients.Retrier
	guard      *RunGuard
	country    config.CountryConfig
	pageSize   int
}

// NewSyncService creates a new sync service
func NewSyncService(
	source CatalogSource,
	brands BrandStore,
	categories CategoryStore,
	products ProductGraphStore,
	cfg *config.Config,
) *SyncService {
	retryConfig := clients.DefaultRetryConfig()
	retryConfig.MaxRetries = cfg.SyncMaxRetries
	if cfg.SyncRetryDelay > 0 {
		retryConfig.InitialBackoff = cfg.SyncRetryDelay
	}

	pageSize := cfg.BigCommercePageSize
	if pageSize <= 0 || pageSize > bigcommerce.MaxPageSize {
		pageSize = bigcommerce.MaxPageSize
	}

	return &SyncService{
		source:     source,
		brands:     brands,
		categories: categories,
		products:   products,
		mapper:     NewSchemaMapper(),
		retrier:    clients.NewRetrier(retryConfig),
		guard:      NewRunGuard(),
		country:    cfg.Country,
		pageSize:   pageSize,
	}
}

// SetRetrier replaces the retry policy for remote calls
func (s *SyncService) SetRetrier(retrier *clients.Retrier) {
	s.retrier = retrier
}

// SyncBrands mirrors every remote brand
func (s *SyncService) SyncBrands(ctx context.Context) (*models.SyncResult, error) {
	return runSync(ctx, s, models.SyncEntityBrands, string(models.SyncEntityBrands),
		func(ctx context.Context, page int) ([]bigcommerce.Brand, int, error) {
			var result *bigcommerce.Page[bigcommerce.Brand]
			err := s.retrier.Do(ctx, "list brands", func(ctx context.Context) error {
				var err error
				result, err = s.source.ListBrandsPage(ctx, page, s.pageSize)
				return err
			})
			if err != nil {
				return nil, 0, err
			}
			return result.Items, result.TotalPages(), nil
		},
		func(b bigcommerce.Brand) int { return b.ID },
		func(ctx context.Context, remote bigcommerce.Brand) (interface{}, error) {
			brand, err := s.mapper.MapBrand(remote)
			if err != nil {
				return nil, err
			}
			if err := s.brands.Upsert(ctx, brand); err != nil {
				return nil, err
			}
			return brand, nil
		},
		1,
	)
}

// SyncCategories mirrors every remote category and drops the category read cache
func (s *SyncService) SyncCategories(ctx context.Context) (*models.SyncResult, error) {
	result, err := runSync(ctx, s, models.SyncEntityCategories, string(models.SyncEntityCategories),
		func(ctx context.Context, page int) ([]bigcommerce.Category, int, error) {
			var result *bigcommerce.Page[bigcommerce.Category]
			err := s.retrier.Do(ctx, "list categories", func(ctx context.Context) error {
				var err error
				result, err = s.source.ListCategoriesPage(ctx, page, s.pageSize)
				return err
			})
			if err != nil {
				return nil, 0, err
			}
			return result.Items, result.TotalPages(), nil
		},
		func(c bigcommerce.Category) int { return c.CategoryID },
		func(ctx context.Context, remote bigcommerce.Category) (interface{}, error) {
			category, err := s.mapper.MapCategory(remote)
			if err != nil {
				return nil, err
			}
			if err := s.categories.Upsert(ctx, category); err != nil {
				return nil, err
			}
			return category, nil
		},
		1,
	)
	if !errors.Is(err, ErrSyncInProgress) {
		s.categories.InvalidateCache(ctx)
	}
	return result, err
}

// SyncChannelProducts mirrors every product assigned to channelID, with its
// variants, category and filter links and the channel assignment itself
func (s *SyncService) SyncChannelProducts(ctx context.Context, channelID int) (*models.SyncResult, error) {
	channel := models.Channel{ID: channelID, Name: s.country.ChannelName(channelID)}

	return runSync(ctx, s, models.SyncEntityChannelProducts, fmt.Sprintf("%s:%d", models.SyncEntityChannelProducts, channelID),
		func(ctx context.Context, page int) ([]int, int, error) {
			var result *bigcommerce.Page[bigcommerce.ChannelAssignment]
			err := s.retrier.Do(ctx, "list channel products", func(ctx context.Context) error {
				var err error
				result, err = s.source.ListChannelProductPage(ctx, channelID, page, s.pageSize)
				return err
			})
			if err != nil {
				return nil, 0, err
			}
			ids := make([]int, 0, len(result.Items))
			for _, assignment := range result.Items {
				ids = append(ids, assignment.ProductID)
			}
			return ids, result.TotalPages(), nil
		},
		func(id int) int { return id },
		func(ctx context.Context, productID int) (interface{}, error) {
			return s.syncProduct(ctx, productID, channel)
		},
		MaxConcurrentPageFetches,
	)
}

func (s *SyncService) syncProduct(ctx context.Context, productID int, channel models.Channel) (interface{}, error) {
	var product *bigcommerce.Product
	err := s.retrier.Do(ctx, fmt.Sprintf("get product %d", productID), func(ctx context.Context) error {
		var err error
		product, err = s.source.GetProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}

	var options []bigcommerce.Option
	err = s.retrier.Do(ctx, fmt.Sprintf("get product %d options", productID), func(ctx context.Context) error {
		var err error
		options, err = s.source.GetProductOptions(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}

	graph, err := s.mapper.MapProductGraph(product, options, channel)
	if err != nil {
		return nil, err
	}
	if err := s.products.UpsertGraph(ctx, graph); err != nil {
		return nil, err
	}
	return graph.Product, nil
}

// runSync fetches every remote item of one entity and reconciles each one
// independently with up to concurrency items in flight. Item failures are
// captured in the result; listing failures and structural persistence
// errors abort the run.
func runSync[T any](
	ctx context.Context,
	s *SyncService,
	entity models.SyncEntity,
	runKey string,
	fetch PageFetcher[T],
	idOf func(T) int,
	reconcile func(ctx context.Context, item T) (interface{}, error),
	concurrency int,
) (*models.SyncResult, error) {
	release, ok := s.guard.TryAcquire(runKey)
	if !ok {
		return nil, ErrSyncInProgress
	}
	defer release()

	log := logging.FromContext(ctx).WithField("entity", entity)
	start := time.Now()
	log.Info("sync started")

	remote, err := FetchAllPages(ctx, fetch)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(string(entity), "fatal").Inc()
		log.WithError(err).Error("sync aborted: remote listing failed")
		return nil, &FatalSyncError{Entity: entity, Err: err}
	}

	remote = uniqueByID(remote, idOf)
	items := make([]models.SyncItemResult, len(remote))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range remote {
		g.Go(func() error {
			stored, err := reconcile(gctx, item)
			if err == nil {
				items[i] = models.SyncItemResult{Data: stored}
				return nil
			}
			if repository.IsStructuralError(err) {
				return err
			}
			if errors.Is(err, context.Canceled) && gctx.Err() != nil {
				return gctx.Err()
			}
			items[i] = models.SyncItemResult{Error: true, Message: err.Error(), Data: item}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.SyncRuns.WithLabelValues(string(entity), "fatal").Inc()
		log.WithError(err).Error("sync aborted")
		return nil, &FatalSyncError{Entity: entity, Err: err}
	}

	var failed []models.SyncFailure
	for i, item := range items {
		if !item.Error {
			metrics.SyncItems.WithLabelValues(string(entity), "ok").Inc()
			continue
		}
		metrics.SyncItems.WithLabelValues(string(entity), "error").Inc()
		id := idOf(remote[i])
		failed = append(failed, models.SyncFailure{ID: id, Error: item.Message})
		log.WithField("item_id", id).WithField("error", item.Message).Warn("item sync failed")
	}

	result := models.NewSyncResult(entity, items, failed)
	outcome := "success"
	if !result.Success {
		outcome = "partial"
	}
	metrics.SyncRuns.WithLabelValues(string(entity), outcome).Inc()
	log.WithFields(logrus.Fields{
		"items":       len(items),
		"failed":      result.FailedCount(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("sync finished")

	return result, nil
}

// uniqueByID drops repeated remote items and orders them by id so reports
// are stable across runs
func uniqueByID[T any](items []T, idOf func(T) int) []T {
	seen := make(map[int]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		id := idOf(item)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return idOf(out[i]) < idOf(out[j]) })
	return out
}
