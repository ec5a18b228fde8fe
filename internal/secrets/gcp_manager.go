package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

// BigCommerceCredentials is the JSON payload of the store credentials secret
type BigCommerceCredentials struct {
	StoreHash   string `json:"store_hash"`
	AccessToken string `json:"access_token"`
	ClientID    string `json:"client_id,omitempty"`
}

// Validate reports whether the credentials can authenticate a request
func (c *BigCommerceCredentials) Validate() error {
	if strings.TrimSpace(c.StoreHash) == "" {
		return fmt.Errorf("store_hash is required")
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		return fmt.Errorf("access_token is required")
	}
	return nil
}

type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

// cacheEntry represents a cached secret with expiration
type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// GCPSecretManager reads secrets from Google Cloud Secret Manager
type GCPSecretManager struct {
	client    secretAccessor
	projectID string
	cache     map[string]*cacheEntry
	cacheMu   sync.RWMutex
	cacheTTL  time.Duration
}

// NewGCPSecretManager creates a new GCP Secret Manager client
func NewGCPSecretManager(ctx context.Context, projectID string) (*GCPSecretManager, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}
	return newManager(client, projectID), nil
}

func newManager(client secretAccessor, projectID string) *GCPSecretManager {
	return &GCPSecretManager{
		client:    client,
		projectID: projectID,
		cache:     make(map[string]*cacheEntry),
		cacheTTL:  5 * time.Minute,
	}
}

// Close closes the Secret Manager client
func (sm *GCPSecretManager) Close() error {
	if sm.client != nil {
		return sm.client.Close()
	}
	return nil
}

// BuildSecretName turns a bare secret id into its full resource name.
// Full names are returned unchanged.
// Format: projects/{project}/secrets/{secret_id}
func (sm *GCPSecretManager) BuildSecretName(secretRef string) string {
	if strings.HasPrefix(secretRef, "projects/") {
		return secretRef
	}
	return fmt.Sprintf("projects/%s/secrets/%s", sm.projectID, sanitizeSecretID(secretRef))
}

// GetSecret returns the latest version payload of secretName
func (sm *GCPSecretManager) GetSecret(ctx context.Context, secretName string) ([]byte, error) {
	sm.cacheMu.RLock()
	if entry, ok := sm.cache[secretName]; ok && time.Now().Before(entry.expiresAt) {
		sm.cacheMu.RUnlock()
		return entry.payload, nil
	}
	sm.cacheMu.RUnlock()

	result, err := sm.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName + "/versions/latest",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access secret: %w", err)
	}

	payload := result.GetPayload().GetData()
	sm.cacheMu.Lock()
	sm.cache[secretName] = &cacheEntry{
		payload:   payload,
		expiresAt: time.Now().Add(sm.cacheTTL),
	}
	sm.cacheMu.Unlock()

	return payload, nil
}

// GetBigCommerceCredentials loads and validates the store credentials
// stored under secretRef
func (sm *GCPSecretManager) GetBigCommerceCredentials(ctx context.Context, secretRef string) (*BigCommerceCredentials, error) {
	payload, err := sm.GetSecret(ctx, sm.BuildSecretName(secretRef))
	if err != nil {
		return nil, err
	}

	var creds BigCommerceCredentials
	if err := json.Unmarshal(payload, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal secret: %w", err)
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bigcommerce credentials: %w", err)
	}
	return &creds, nil
}

// InvalidateCache removes a secret from the cache
func (sm *GCPSecretManager) InvalidateCache(secretName string) {
	sm.cacheMu.Lock()
	delete(sm.cache, secretName)
	sm.cacheMu.Unlock()
}

// sanitizeSecretID removes or replaces invalid characters for GCP secret IDs
// Secret IDs can only contain alphanumeric characters, hyphens, and underscores
func sanitizeSecretID(input string) string {
	var result strings.Builder
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result.WriteRune(r)
		} else {
			result.WriteRune('-')
		}
	}
	return result.String()
}
