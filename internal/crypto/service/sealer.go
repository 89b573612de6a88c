package service

import (
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
)

// SealerService implements Sealer on top of an AEADManager. The sealed wire
// format is base64(nonce || ciphertext || tag): 12-byte nonce prefix,
// 16-byte tag suffix, identical across every AEAD backend.
type SealerService struct {
	aeadManager AEADManager
}

// NewSealer creates a SealerService using the provided AEADManager.
func NewSealer(aeadManager AEADManager) *SealerService {
	return &SealerService{aeadManager: aeadManager}
}

// GenerateKey produces a fresh single-use 256-bit data key.
func (s *SealerService) GenerateKey() (cryptoDomain.DataKey, error) {
	return cryptoDomain.NewDataKey()
}

// Seal encrypts plaintext under key with a fresh nonce and returns the
// base64-encoded nonce||ciphertext||tag payload.
func (s *SealerService) Seal(
	plaintext []byte,
	key cryptoDomain.DataKey,
	alg cryptoDomain.Algorithm,
) (string, error) {
	aead, err := s.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return "", err
	}

	ciphertext, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to seal value: %w", err)
	}

	packed := make([]byte, 0, len(nonce)+len(ciphertext))
	packed = append(packed, nonce...)
	packed = append(packed, ciphertext...)

	return base64.StdEncoding.EncodeToString(packed), nil
}

// Open decodes and decrypts a sealed payload. Structural problems (bad
// base64, payload shorter than nonce+tag) surface as ErrMalformedCiphertext
// before any cipher work; a tag verification failure surfaces as
// ErrDecryptionFailed and is never swallowed.
func (s *SealerService) Open(
	sealed string,
	key cryptoDomain.DataKey,
	alg cryptoDomain.Algorithm,
) ([]byte, error) {
	packed, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrMalformedCiphertext, err)
	}
	if len(packed) < cryptoDomain.MinSealedSize {
		return nil, fmt.Errorf(
			"%w: got %d bytes, want at least %d",
			cryptoDomain.ErrMalformedCiphertext,
			len(packed),
			cryptoDomain.MinSealedSize,
		)
	}

	aead, err := s.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, err
	}

	nonce := packed[:cryptoDomain.NonceSize]
	ciphertext := packed[cryptoDomain.NonceSize:]

	plaintext, err := aead.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return plaintext, nil
}
