package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sharedsecrets "github.com/Tesseract-Nexus/go-shared/secrets"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"catalog-sync-service/internal/clients/bigcommerce"
	"catalog-sync-service/internal/clients/inventory"
	"catalog-sync-service/internal/clients/pricing"
	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/database"
	"catalog-sync-service/internal/handlers"
	"catalog-sync-service/internal/logging"
	"catalog-sync-service/internal/metrics"
	"catalog-sync-service/internal/middleware"
	"catalog-sync-service/internal/repository"
	"catalog-sync-service/internal/secrets"
	"catalog-sync-service/internal/services"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger := logging.Init(cfg.Environment, cfg.LogLevel)

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}
	logger.Info("✓ Database models migrated")

	redisClient := connectRedis(cfg.RedisURL, logger)
	loadBigCommerceCredentials(cfg, logger)

	// Initialize clients
	catalogClient := bigcommerce.NewClient(bigcommerce.Config{
		BaseURL:     cfg.BigCommerceBaseURL,
		StoreHash:   cfg.BigCommerceStoreHash,
		AccessToken: cfg.BigCommerceToken,
		RateLimit:   cfg.BigCommerceRateLimit,
	})
	priceClient := pricing.NewClient(cfg.PriceServiceURL, redisClient)
	inventoryClient := inventory.NewClient(cfg.InventoryServiceURL, redisClient)

	// Initialize repositories
	brandRepo := repository.NewBrandRepository(db)
	categoryRepo := repository.NewCategoryRepository(db, redisClient, cfg.CacheTTL)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)

	// Initialize services
	syncService := services.NewSyncService(catalogClient, brandRepo, categoryRepo, productRepo, cfg)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, brandRepo)
	var enricher *services.Enricher
	if cfg.EnrichVariants {
		enricher = services.NewEnricher(priceClient, inventoryClient, cfg.Country)
	}
	variantService := services.NewVariantService(
		variantRepo,
		services.NewVariantFormatter(cfg.Country.Code, cfg.OrphanVariantPolicy),
		enricher,
		inventoryClient,
		cfg.Country.LocationID,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	syncHandler := handlers.NewSyncHandler(syncService, cfg.Country, cfg.SyncPartialFailureStatus)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	variantHandler := handlers.NewVariantHandler(variantService, cfg.Country)

	router := setupRouter(cfg, healthHandler, syncHandler, catalogHandler, variantHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"env":     cfg.Environment,
			"country": cfg.Country.Code,
		}).Info("Catalog Sync Service starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down catalog-sync-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("Server exited")
}

// connectRedis returns nil when Redis is not configured or unreachable;
// caching is then disabled
func connectRedis(redisURL string, logger *logrus.Logger) *redis.Client {
	if redisURL == "" {
		logger.Info("REDIS_URL not set, caching disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.WithError(err).Warn("Failed to parse Redis URL (caching disabled)")
		return nil
	}
	if opts.Password == "" {
		opts.Password = sharedsecrets.GetRedisPassword()
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("Failed to connect to Redis (caching disabled)")
		client.Close()
		return nil
	}
	logger.Info("✓ Redis connected successfully")
	return client
}

// loadBigCommerceCredentials overrides the store hash and token from GCP
// Secret Manager when a secret is configured
func loadBigCommerceCredentials(cfg *config.Config, logger *logrus.Logger) {
	if cfg.GCPProjectID == "" || cfg.BigCommerceSecretRef == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	manager, err := secrets.NewGCPSecretManager(ctx, cfg.GCPProjectID)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize GCP Secret Manager")
		return
	}
	defer manager.Close()

	creds, err := manager.GetBigCommerceCredentials(ctx, cfg.BigCommerceSecretRef)
	if err != nil {
		logger.WithError(err).Warn("Failed to load BigCommerce credentials from Secret Manager")
		return
	}
	cfg.BigCommerceStoreHash = creds.StoreHash
	cfg.BigCommerceToken = creds.AccessToken
	logger.Info("✓ BigCommerce credentials loaded from Secret Manager")
}

// setupRouter configures the HTTP router
func setupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	syncHandler *handlers.SyncHandler,
	catalogHandler *handlers.CatalogHandler,
	variantHandler *handlers.VariantHandler,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(middleware.SecurityHeaders())

	var origins []string
	if allowed := os.Getenv("CORS_ALLOWED_ORIGINS"); allowed != "" {
		origins = strings.Split(allowed, ",")
	}
	router.Use(middleware.CORS(origins))

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/sincronizar-marcas", syncHandler.SyncBrands)
		v1.GET("/sincronizar-categorias", syncHandler.SyncCategories)
		v1.GET("/sincronizar-productos/:channel_id", syncHandler.SyncChannelProducts)

		v1.GET("/products", catalogHandler.ListProducts)
		v1.GET("/products/:id", catalogHandler.GetProduct)
		v1.GET("/categories", catalogHandler.ListCategories)
		v1.GET("/categories/:id", catalogHandler.GetCategory)
		v1.GET("/brands", catalogHandler.ListBrands)
		v1.GET("/brands/:id/products/count", catalogHandler.CountBrandProducts)

		v1.GET("/variants", variantHandler.List)
		v1.POST("/variants/formatted-by-ids", variantHandler.FormattedByIDs)
		v1.PATCH("/variants/:id/safe-stock", variantHandler.UpdateSafeStock)
	}

	return router
}
