package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/fastkv/fastkv-go/internal/crypto/domain"
)

func newTestSealer(backend Backend) *SealerService {
	return NewSealer(NewAEADManager(backend))
}

func TestSealerService_GenerateKey(t *testing.T) {
	sealer := newTestSealer(StdBackend)

	key, err := sealer.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, []byte(key), cryptoDomain.KeySize)
}

func TestSealerService_SealOpen(t *testing.T) {
	for _, alg := range []cryptoDomain.Algorithm{
		cryptoDomain.AES256GCM,
		cryptoDomain.ChaCha20Poly1305,
	} {
		t.Run(string(alg), func(t *testing.T) {
			sealer := newTestSealer(StdBackend)
			key, err := sealer.GenerateKey()
			require.NoError(t, err)

			plaintext := []byte("hello world")
			sealed, err := sealer.Seal(plaintext, key, alg)
			require.NoError(t, err)

			packed, err := base64.StdEncoding.DecodeString(sealed)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(packed), cryptoDomain.MinSealedSize)
			assert.Len(t, packed, cryptoDomain.MinSealedSize+len(plaintext))

			opened, err := sealer.Open(sealed, key, alg)
			require.NoError(t, err)
			assert.Equal(t, plaintext, opened)
		})
	}

	t.Run("empty plaintext", func(t *testing.T) {
		sealer := newTestSealer(StdBackend)
		key, err := sealer.GenerateKey()
		require.NoError(t, err)

		sealed, err := sealer.Seal(nil, key, cryptoDomain.AES256GCM)
		require.NoError(t, err)

		packed, err := base64.StdEncoding.DecodeString(sealed)
		require.NoError(t, err)
		assert.Len(t, packed, cryptoDomain.MinSealedSize)

		opened, err := sealer.Open(sealed, key, cryptoDomain.AES256GCM)
		require.NoError(t, err)
		assert.Empty(t, opened)
	})

	t.Run("unicode plaintext round-trips", func(t *testing.T) {
		sealer := newTestSealer(StdBackend)
		key, err := sealer.GenerateKey()
		require.NoError(t, err)

		plaintext := []byte("héllo wörld é世界")
		sealed, err := sealer.Seal(plaintext, key, cryptoDomain.AES256GCM)
		require.NoError(t, err)

		opened, err := sealer.Open(sealed, key, cryptoDomain.AES256GCM)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	})
}

func TestSealerService_Open_Errors(t *testing.T) {
	sealer := newTestSealer(StdBackend)
	key, err := sealer.GenerateKey()
	require.NoError(t, err)

	t.Run("malformed base64", func(t *testing.T) {
		_, err := sealer.Open("%%%not-base64%%%", key, cryptoDomain.AES256GCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedCiphertext)
	})

	t.Run("too short for nonce and tag", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString(make([]byte, cryptoDomain.MinSealedSize-1))
		_, err := sealer.Open(short, key, cryptoDomain.AES256GCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedCiphertext)
	})

	t.Run("tampered payload", func(t *testing.T) {
		sealed, err := sealer.Seal([]byte("payload"), key, cryptoDomain.AES256GCM)
		require.NoError(t, err)

		packed, err := base64.StdEncoding.DecodeString(sealed)
		require.NoError(t, err)
		packed[len(packed)-1] ^= 0x01

		_, err = sealer.Open(base64.StdEncoding.EncodeToString(packed), key, cryptoDomain.AES256GCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("wrong key", func(t *testing.T) {
		sealed, err := sealer.Seal([]byte("payload"), key, cryptoDomain.AES256GCM)
		require.NoError(t, err)

		otherKey, err := sealer.GenerateKey()
		require.NoError(t, err)

		_, err = sealer.Open(sealed, otherKey, cryptoDomain.AES256GCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := sealer.Seal([]byte("payload"), key, cryptoDomain.Algorithm("nope"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})
}

// A value sealed by the std-backed sealer opens with the tink-backed sealer
// and vice versa: the sealed encoding carries no backend affinity.
func TestSealerService_CrossBackend(t *testing.T) {
	stdSealer := newTestSealer(StdBackend)
	tinkSealer := newTestSealer(TinkBackend)

	key, err := stdSealer.GenerateKey()
	require.NoError(t, err)

	plaintext := []byte("no environment affinity")

	sealedByStd, err := stdSealer.Seal(plaintext, key, cryptoDomain.AES256GCM)
	require.NoError(t, err)
	opened, err := tinkSealer.Open(sealedByStd, key, cryptoDomain.AES256GCM)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)

	sealedByTink, err := tinkSealer.Seal(plaintext, key, cryptoDomain.AES256GCM)
	require.NoError(t, err)
	opened, err = stdSealer.Open(sealedByTink, key, cryptoDomain.AES256GCM)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}
