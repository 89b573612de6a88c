package service

import (
	"context"

	"golang.org/x/time/rate"

	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// RateLimitedStore decorates a Store with a client-side token bucket, so
// bulk operations stay within an indexer's request budget. Each operation
// waits for a token or fails with the context's error.
type RateLimitedStore struct {
	next    Store
	limiter *rate.Limiter
}

// NewRateLimitedStore wraps a store with a limiter allowing requestsPerSec
// sustained requests and the given burst.
func NewRateLimitedStore(next Store, requestsPerSec float64, burst int) *RateLimitedStore {
	return &RateLimitedStore{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), burst),
	}
}

// Set waits for a token and delegates.
func (s *RateLimitedStore) Set(
	ctx context.Context,
	key string,
	entry storageDomain.EncryptedEntry,
) (*storageDomain.Receipt, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.next.Set(ctx, key, entry)
}

// Get waits for a token and delegates.
func (s *RateLimitedStore) Get(ctx context.Context, key string) (*storageDomain.EncryptedEntry, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.next.Get(ctx, key)
}

// Delete waits for a token and delegates.
func (s *RateLimitedStore) Delete(ctx context.Context, key string) (*storageDomain.Receipt, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.next.Delete(ctx, key)
}

// List waits for a token and delegates.
func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.next.List(ctx, prefix)
}
