package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Tesseract-Nexus/go-shared/secrets"
)

// Orphan variant policies
const (
	OrphanTolerate = "tolerate"
	OrphanSkip     = "skip"
)

// Config holds all configuration for the catalog sync service
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database
	DatabaseURL string

	// Redis (optional, read caches)
	RedisURL string
	CacheTTL time.Duration

	// GCP
	GCPProjectID         string
	BigCommerceSecretRef string

	// BigCommerce
	BigCommerceBaseURL   string
	BigCommerceStoreHash string
	BigCommerceToken     string
	BigCommercePageSize  int
	BigCommerceRateLimit int // requests per second

	// Enrichment services
	PriceServiceURL     string
	InventoryServiceURL string
	EnrichVariants      bool

	// Sync behaviour
	SyncMaxRetries           int
	SyncRetryDelay           time.Duration
	SyncPartialFailureStatus int
	OrphanVariantPolicy      string

	Country CountryConfig
}

// CountryConfig carries the per-deployment country specific settings.
// It is built once at startup and passed explicitly to whoever needs it.
type CountryConfig struct {
	Code        string
	PriceListID int
	LocationID  int
	// Channels maps a local channel name to its BigCommerce channel id
	Channels map[string]int
}

// defaultChannels are the storefront channels configured per country
var defaultChannels = map[string]map[string]int{
	"CL": {"web": 1, "falabella": 1571013, "mercadolibre": 1571014, "ripley": 1571015},
	"PE": {"web": 1, "falabella": 1612110, "mercadolibre": 1612111},
	"CO": {"web": 1, "falabella": 1630210},
}

// HasChannel reports whether id is one of the configured remote channel ids
func (c CountryConfig) HasChannel(id int) bool {
	for _, channelID := range c.Channels {
		if channelID == id {
			return true
		}
	}
	return false
}

// ChannelName returns the local name of a remote channel id
func (c CountryConfig) ChannelName(id int) string {
	names := make([]string, 0, len(c.Channels))
	for name := range c.Channels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if c.Channels[name] == id {
			return name
		}
	}
	return fmt.Sprintf("channel-%d", id)
}

// ChannelIDs returns the configured remote channel ids in ascending order
func (c CountryConfig) ChannelIDs() []int {
	ids := make([]int, 0, len(c.Channels))
	for _, id := range c.Channels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Load loads configuration from environment variables
func Load() *Config {
	// Build DATABASE_URL from components, password from GCP Secret Manager
	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL == "" {
		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			getEnv("DB_USER", "postgres"),
			secrets.GetDBPassword(),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_NAME", "catalog"),
			getEnv("DB_SSLMODE", "disable"))
	}

	countryCode := strings.ToUpper(getEnv("COUNTRY_CODE", "CL"))

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		DatabaseURL: databaseURL,

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getEnvAsDuration("CACHE_TTL", 5*time.Minute),

		GCPProjectID:         getEnv("GCP_PROJECT_ID", ""),
		BigCommerceSecretRef: getEnv("BIGCOMMERCE_SECRET_NAME", ""),

		BigCommerceBaseURL:   getEnv("BIGCOMMERCE_BASE_URL", "https://api.bigcommerce.com"),
		BigCommerceStoreHash: getEnv("BIGCOMMERCE_STORE_HASH", ""),
		BigCommerceToken:     getEnv("BIGCOMMERCE_ACCESS_TOKEN", ""),
		BigCommercePageSize:  getEnvAsInt("BIGCOMMERCE_PAGE_SIZE", 250),
		BigCommerceRateLimit: getEnvAsInt("BIGCOMMERCE_RATE_LIMIT", 30),

		PriceServiceURL:     getEnv("PRICE_SERVICE_URL", "http://price-service:8080"),
		InventoryServiceURL: getEnv("INVENTORY_SERVICE_URL", "http://inventory-service:8080"),
		EnrichVariants:      getEnvAsBool("ENRICH_VARIANTS", true),

		SyncMaxRetries:           getEnvAsInt("SYNC_MAX_RETRIES", 3),
		SyncRetryDelay:           getEnvAsDuration("SYNC_RETRY_DELAY", time.Second),
		SyncPartialFailureStatus: getEnvAsInt("SYNC_PARTIAL_FAILURE_STATUS", 200),
		OrphanVariantPolicy:      getEnv("ORPHAN_VARIANT_POLICY", OrphanTolerate),

		Country: CountryConfig{
			Code:        countryCode,
			PriceListID: getEnvAsInt("PRICE_LIST_ID", 1),
			LocationID:  getEnvAsInt("INVENTORY_LOCATION_ID", 1),
			Channels:    loadChannels(countryCode, getEnv("CHANNELS", "")),
		},
	}

	if cfg.OrphanVariantPolicy != OrphanTolerate && cfg.OrphanVariantPolicy != OrphanSkip {
		log.Printf("Warning: unknown ORPHAN_VARIANT_POLICY %q, using %q", cfg.OrphanVariantPolicy, OrphanTolerate)
		cfg.OrphanVariantPolicy = OrphanTolerate
	}
	if cfg.SyncPartialFailureStatus < 200 || cfg.SyncPartialFailureStatus > 599 {
		cfg.SyncPartialFailureStatus = 200
	}
	if cfg.BigCommerceStoreHash == "" && cfg.BigCommerceSecretRef == "" {
		log.Println("Warning: BIGCOMMERCE_STORE_HASH not set, sync endpoints will fail")
	}

	return cfg
}

// loadChannels parses "name:id,name:id". An empty spec falls back to the
// country defaults.
func loadChannels(countryCode, spec string) map[string]int {
	channels := make(map[string]int)
	if spec == "" {
		for name, id := range defaultChannels[countryCode] {
			channels[name] = id
		}
		if len(channels) == 0 {
			channels["web"] = 1
		}
		return channels
	}

	for _, pair := range strings.Split(spec, ",") {
		name, rawID, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(rawID))
		if err != nil || id <= 0 {
			log.Printf("Warning: ignoring invalid channel %q", pair)
			continue
		}
		channels[strings.TrimSpace(name)] = id
	}
	return channels
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvAsBool gets an environment variable as a boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
