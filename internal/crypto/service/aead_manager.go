package service

import (
	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
)

// Backend selects which AES-GCM implementation the manager hands out.
// Both produce byte-identical payloads; the choice only matters for the
// runtime environment (the Tink backend is the one embedded alongside other
// Tink-based tooling).
type Backend string

const (
	// StdBackend uses crypto/aes and crypto/cipher from the standard library.
	StdBackend Backend = "std"

	// TinkBackend uses Tink's AES-GCM primitive.
	TinkBackend Backend = "tink"
)

// AEADManagerService implements AEADManager for the supported algorithms.
type AEADManagerService struct {
	backend Backend
}

// NewAEADManager creates an AEADManagerService using the given backend for
// AES-256-GCM. An empty backend defaults to the standard library.
func NewAEADManager(backend Backend) *AEADManagerService {
	if backend == "" {
		backend = StdBackend
	}
	return &AEADManagerService{backend: backend}
}

// CreateCipher creates an AEAD cipher instance for the specified algorithm.
// Returns ErrInvalidKeySize if key is not 32 bytes or ErrUnsupportedAlgorithm
// if the algorithm tag is unknown.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch alg {
	case cryptoDomain.AES256GCM:
		if am.backend == TinkBackend {
			cipher, err := NewTinkAESGCM(key)
			if err != nil {
				return nil, err
			}
			return cipher, nil
		}
		cipher, err := NewAESGCM(key)
		if err != nil {
			return nil, err
		}
		return cipher, nil
	case cryptoDomain.ChaCha20Poly1305:
		cipher, err := NewChaCha20Poly1305(key)
		if err != nil {
			return nil, err
		}
		return cipher, nil
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
}
