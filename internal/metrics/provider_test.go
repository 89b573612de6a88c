package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("creates provider with namespace", func(t *testing.T) {
		provider, err := NewProvider("fastkv")

		require.NoError(t, err)
		assert.NotNil(t, provider.MeterProvider())
		assert.NotNil(t, provider.registry)
	})

	t.Run("empty namespace is accepted", func(t *testing.T) {
		provider, err := NewProvider("")

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})
}

func TestProvider_Handler(t *testing.T) {
	provider, err := NewProvider("fastkv")
	require.NoError(t, err)

	biz, err := NewBusinessMetrics(provider.MeterProvider(), "fastkv")
	require.NoError(t, err)
	biz.RecordOperation(context.Background(), "vault", "vault_set", "success")

	rec := httptest.NewRecorder()
	provider.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fastkv_operations_total")
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("shutdown flushes without error", func(t *testing.T) {
		provider, err := NewProvider("fastkv")
		require.NoError(t, err)

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("shutdown without meter provider is a no-op", func(t *testing.T) {
		provider := &Provider{}

		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
