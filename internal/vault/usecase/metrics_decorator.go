package usecase

import (
	"context"
	"time"

	"github.com/fastkv/fastkv-go/internal/metrics"
	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Set records metrics for value write operations.
func (v *vaultUseCaseWithMetrics) Set(
	ctx context.Context,
	userKey string,
	plaintext []byte,
) (*storageDomain.Receipt, error) {
	start := time.Now()
	receipt, err := v.next.Set(ctx, userKey, plaintext)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_set", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_set", time.Since(start), status)

	return receipt, err
}

// Get records metrics for value read operations.
func (v *vaultUseCaseWithMetrics) Get(ctx context.Context, userKey string) ([]byte, bool, error) {
	start := time.Now()
	plaintext, found, err := v.next.Get(ctx, userKey)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_get", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_get", time.Since(start), status)

	return plaintext, found, err
}

// Delete records metrics for value deletion operations.
func (v *vaultUseCaseWithMetrics) Delete(
	ctx context.Context,
	userKey string,
) (*storageDomain.Receipt, error) {
	start := time.Now()
	receipt, err := v.next.Delete(ctx, userKey)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_delete", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_delete", time.Since(start), status)

	return receipt, err
}

// List records metrics for key listing operations.
func (v *vaultUseCaseWithMetrics) List(ctx context.Context, userPrefix string) ([]string, error) {
	start := time.Now()
	keys, err := v.next.List(ctx, userPrefix)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_list", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_list", time.Since(start), status)

	return keys, err
}

// KeyID records metrics for key id resolution operations.
func (v *vaultUseCaseWithMetrics) KeyID(ctx context.Context) (string, error) {
	start := time.Now()
	keyID, err := v.next.KeyID(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_key_id", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_key_id", time.Since(start), status)

	return keyID, err
}
