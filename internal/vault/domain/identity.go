// Package domain defines the naming rules of the envelope vault: how an
// account, a namespace and a user-supplied key combine into the group
// identifier presented to the trust anchor and the fully qualified key used
// in storage.
package domain

import (
	"strings"

	validation "github.com/jellydator/validation"

	appvalidation "github.com/fastkv/fastkv-go/internal/validation"
)

// pathSegment validates a single path segment: non-empty and free of "/",
// so derived identifiers stay unambiguous.
var pathSegment = validation.NewStringRuleWithError(
	func(s string) bool {
		return s != "" && !strings.Contains(s, "/")
	},
	validation.NewError("validation_path_segment", "must be a non-empty value without slashes"),
)

// Identity fixes the scope every vault operation runs under. All derived
// names are pure string functions of it; two coordinators built from equal
// identities address the same entries and the same wrapping policy.
type Identity struct {
	// AccountID is the storage account owning the entries.
	AccountID string

	// Namespace partitions an account's keyspace. Entries written under one
	// namespace are invisible to list and get calls under another.
	Namespace string

	// GroupSuffix selects the access-control group within the account.
	GroupSuffix string
}

// Validate checks the identity fields.
func (i Identity) Validate() error {
	return appvalidation.WrapValidationError(validation.ValidateStruct(&i,
		validation.Field(&i.AccountID, validation.Required, appvalidation.AccountID),
		validation.Field(&i.Namespace, validation.Required, pathSegment),
		validation.Field(&i.GroupSuffix, validation.Required, pathSegment),
	))
}

// GroupID returns the group identifier presented to the trust anchor,
// {accountID}/{groupSuffix}.
func (i Identity) GroupID() string {
	return i.AccountID + "/" + i.GroupSuffix
}

// FullKey returns the storage key for a user key,
// {namespace}/{accountID}/{userKey}.
func (i Identity) FullKey(userKey string) string {
	return i.Prefix() + userKey
}

// Prefix returns the storage prefix all of this identity's entries live
// under, {namespace}/{accountID}/.
func (i Identity) Prefix() string {
	return i.Namespace + "/" + i.AccountID + "/"
}

// StripPrefix converts fully qualified storage keys back into user keys.
// Keys outside this identity's prefix are dropped.
func (i Identity) StripPrefix(keys []string) []string {
	prefix := i.Prefix()
	stripped := make([]string, 0, len(keys))
	for _, key := range keys {
		userKey, ok := strings.CutPrefix(key, prefix)
		if !ok || userKey == "" {
			continue
		}
		stripped = append(stripped, userKey)
	}
	return stripped
}

// ValidateUserKey checks a user-supplied key before it is embedded into a
// fully qualified storage key.
func ValidateUserKey(userKey string) error {
	return appvalidation.WrapValidationError(
		validation.Validate(userKey, validation.Required, appvalidation.UserKey),
	)
}
