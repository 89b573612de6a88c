package domain

import (
	"github.com/fastkv/fastkv-go/internal/errors"
)

var (
	// ErrStoreUnavailable indicates a transport failure talking to the
	// storage backend. Distinct from an absent key, which is a nil result.
	ErrStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "storage backend unavailable")

	// ErrInvalidEntry indicates a record that does not validate as an
	// encrypted entry, on write or on read-back.
	ErrInvalidEntry = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted entry")
)
