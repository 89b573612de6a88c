package domain

import (
	"fmt"
	"strings"
)

// inlinePrefix is the literal marker of the inline encrypted-value format.
const inlinePrefix = "enc:AES256:"

// InlineValue is the combined encrypted-value string format used when a
// ciphertext is embedded inside a larger key-value record instead of stored
// as its own entry: "enc:AES256:<key_id>:<ciphertext_base64>".
type InlineValue struct {
	KeyID         string
	CiphertextB64 string
}

// ParseInlineValue parses the combined format. Any string that is not
// exactly four colon-delimited segments with the literal "enc:AES256:"
// prefix is rejected as not encrypted (ok=false, not an error), before any
// network round trip is attempted on it.
func ParseInlineValue(value string) (InlineValue, bool) {
	rest, found := strings.CutPrefix(value, inlinePrefix)
	if !found {
		return InlineValue{}, false
	}

	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return InlineValue{}, false
	}
	if strings.Contains(parts[1], ":") {
		return InlineValue{}, false
	}

	return InlineValue{
		KeyID:         parts[0],
		CiphertextB64: parts[1],
	}, true
}

// DetectInline reports whether a raw stored value carries the inline format,
// returning its key id when it does. Surrounding JSON string quotes are
// tolerated, mirroring how indexers see the value.
func DetectInline(value string) (string, bool) {
	trimmed := strings.Trim(value, `"`)
	parsed, ok := ParseInlineValue(trimmed)
	if !ok {
		return "", false
	}
	return parsed.KeyID, true
}

// String serializes the inline value back to its wire form.
func (v InlineValue) String() string {
	return fmt.Sprintf("%s%s:%s", inlinePrefix, v.KeyID, v.CiphertextB64)
}
