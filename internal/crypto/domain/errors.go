package domain

import (
	"github.com/fastkv/fastkv-go/internal/errors"
)

var (
	// ErrInvalidKeySize indicates a data key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrUnsupportedAlgorithm indicates an unknown algorithm tag.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrMalformedCiphertext indicates a sealed payload that cannot even be
	// split into nonce and ciphertext: bad base64 or shorter than
	// MinSealedSize. Detected before any cipher work.
	ErrMalformedCiphertext = errors.Wrap(errors.ErrInvalidInput, "malformed ciphertext")

	// ErrDecryptionFailed indicates the authentication tag did not verify:
	// the payload was tampered with or sealed under a different key. Kept
	// distinct from ErrNotFound so callers can tell "no such secret" apart
	// from "this secret is corrupted".
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
