package domain

import (
	"github.com/fastkv/fastkv-go/internal/errors"
)

var (
	// ErrGroupUnauthorized indicates the trust anchor rejected the caller
	// for the requested group. Propagated verbatim; never retried or
	// downgraded locally.
	ErrGroupUnauthorized = errors.Wrap(errors.ErrUnauthorized, "not authorized for group")

	// ErrAnchorFailure indicates the invocation itself failed: transport
	// error, signer failure, or a malformed response.
	ErrAnchorFailure = errors.Wrap(errors.ErrUnavailable, "trust anchor invocation failed")
)
