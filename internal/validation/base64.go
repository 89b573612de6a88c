package validation

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"
)

// Base64 validates that a string decodes as standard base64. Empty strings
// pass so Required stays the single source of presence errors.
var Base64 = validation.By(func(value interface{}) error {
	encoded, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if encoded == "" {
		return nil
	}
	if _, err := base64.StdEncoding.DecodeString(encoded); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})
