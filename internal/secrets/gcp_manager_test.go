package secrets

import (
	"context"
	"errors"
	"testing"

	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccessor struct {
	payloads map[string]string
	calls    int
}

func (f *fakeAccessor) AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.calls++
	data, ok := f.payloads[req.GetName()]
	if !ok {
		return nil, errors.New("rpc error: code = NotFound")
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Payload: &secretmanagerpb.SecretPayload{Data: []byte(data)},
	}, nil
}

func (f *fakeAccessor) Close() error { return nil }

func TestBuildSecretName(t *testing.T) {
	sm := newManager(&fakeAccessor{}, "acme")

	assert.Equal(t, "projects/acme/secrets/bigcommerce-cl", sm.BuildSecretName("bigcommerce.cl"))
	assert.Equal(t, "projects/other/secrets/x", sm.BuildSecretName("projects/other/secrets/x"))
}

func TestGetBigCommerceCredentials(t *testing.T) {
	accessor := &fakeAccessor{payloads: map[string]string{
		"projects/acme/secrets/bc/versions/latest": `{"store_hash":"abc123","access_token":"tok"}`,
	}}
	sm := newManager(accessor, "acme")

	creds, err := sm.GetBigCommerceCredentials(context.Background(), "bc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", creds.StoreHash)
	assert.Equal(t, "tok", creds.AccessToken)

	_, err = sm.GetBigCommerceCredentials(context.Background(), "bc")
	require.NoError(t, err)
	assert.Equal(t, 1, accessor.calls, "second read is served from cache")

	sm.InvalidateCache("projects/acme/secrets/bc")
	_, err = sm.GetBigCommerceCredentials(context.Background(), "bc")
	require.NoError(t, err)
	assert.Equal(t, 2, accessor.calls)
}

func TestGetBigCommerceCredentials_Invalid(t *testing.T) {
	accessor := &fakeAccessor{payloads: map[string]string{
		"projects/acme/secrets/empty/versions/latest":  `{"store_hash":"abc123"}`,
		"projects/acme/secrets/broken/versions/latest": `not json`,
	}}
	sm := newManager(accessor, "acme")

	_, err := sm.GetBigCommerceCredentials(context.Background(), "empty")
	assert.ErrorContains(t, err, "access_token is required")

	_, err = sm.GetBigCommerceCredentials(context.Background(), "broken")
	assert.ErrorContains(t, err, "failed to unmarshal secret")

	_, err = sm.GetBigCommerceCredentials(context.Background(), "missing")
	assert.ErrorContains(t, err, "failed to access secret")
}
