package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RunGenKeeperKey generates a 32-byte key and prints it as a base64key://
// URI for the local keeper anchor. Local keeper keys are a development
// convenience; production deployments point FASTKV_KEEPER_KEY_URI at a cloud
// KMS key instead.
func RunGenKeeperKey(ioTuple IOTuple) error {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate keeper key: %w", err)
	}

	uri := "base64key://" + base64.URLEncoding.EncodeToString(key)

	_, _ = fmt.Fprintln(ioTuple.Writer, "# Keeper key configuration")
	_, _ = fmt.Fprintln(ioTuple.Writer, "# Copy this environment variable to your .env file or secrets manager")
	_, _ = fmt.Fprintln(ioTuple.Writer)
	_, _ = fmt.Fprintf(ioTuple.Writer, "FASTKV_KEEPER_KEY_URI=%q\n", uri)

	// Zero out the key from memory for security
	for i := range key {
		key[i] = 0
	}

	return nil
}
