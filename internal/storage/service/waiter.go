package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	apperrors "github.com/fastkv/fastkv-go/internal/errors"
	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// Waiter polls a store until a key becomes visible. Chain-backed stores are
// eventually consistent: a write acknowledged by the transaction layer can
// take a few blocks to reach the indexer. The envelope coordinator itself
// never retries reads; this helper lives at the application boundary for
// callers that want read-after-write visibility.
type Waiter struct {
	store           Store
	initialInterval time.Duration
	maxElapsed      time.Duration
}

// NewWaiter creates a Waiter around a store. Non-positive durations fall
// back to 500ms initial interval and 30s total budget.
func NewWaiter(store Store, initialInterval, maxElapsed time.Duration) *Waiter {
	if initialInterval <= 0 {
		initialInterval = 500 * time.Millisecond
	}
	if maxElapsed <= 0 {
		maxElapsed = 30 * time.Second
	}
	return &Waiter{
		store:           store,
		initialInterval: initialInterval,
		maxElapsed:      maxElapsed,
	}
}

// WaitForKey polls with exponential backoff until the key is visible,
// returning its entry. Fails with ErrNotFound when the budget is exhausted
// first; transport failures abort the wait immediately.
func (w *Waiter) WaitForKey(ctx context.Context, key string) (*storageDomain.EncryptedEntry, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = w.initialInterval
	policy.MaxElapsedTime = w.maxElapsed

	entry, err := backoff.RetryWithData(
		func() (*storageDomain.EncryptedEntry, error) {
			entry, err := w.store.Get(ctx, key)
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			if entry == nil {
				return nil, apperrors.Wrapf(apperrors.ErrNotFound, "key %q not yet visible", key)
			}
			return entry, nil
		},
		backoff.WithContext(policy, ctx),
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}
