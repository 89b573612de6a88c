// Package domain holds the cryptographic types shared by the crypto services:
// algorithm tags, size constants and the per-value data key.
package domain

// Algorithm identifies the authenticated encryption scheme used to seal a
// value. The tag is persisted verbatim in every encrypted entry, so the
// values are part of the wire format and must not change.
type Algorithm string

const (
	// AES256GCM is AES-256 in Galois/Counter Mode. 256-bit key, 12-byte
	// nonce, 16-byte authentication tag. The default algorithm; hardware
	// accelerated on CPUs with AES-NI.
	AES256GCM Algorithm = "AES-256-GCM"

	// ChaCha20Poly1305 combines the ChaCha20 stream cipher with the
	// Poly1305 MAC. Same key, nonce and tag sizes as AES256GCM; preferred
	// on platforms without AES hardware acceleration.
	ChaCha20Poly1305 Algorithm = "ChaCha20-Poly1305"
)

const (
	// KeySize is the data key length in bytes (256 bits).
	KeySize = 32

	// NonceSize is the nonce length in bytes (96 bits). The nonce is
	// generated fresh for every seal and prefixed to the ciphertext.
	NonceSize = 12

	// TagSize is the authentication tag length in bytes (128 bits). The
	// tag is appended to the ciphertext by the AEAD.
	TagSize = 16

	// MinSealedSize is the smallest possible sealed payload: a nonce and a
	// tag around an empty plaintext.
	MinSealedSize = NonceSize + TagSize
)

// EntryVersion is the current layout version written into every persisted
// encrypted entry.
const EntryVersion = 1
