package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/fastkv/fastkv-go/internal/errors"
)

func TestIdentity_Validate(t *testing.T) {
	valid := Identity{AccountID: "alice.near", Namespace: "app", GroupSuffix: "team"}

	t.Run("valid identity", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("invalid fields", func(t *testing.T) {
		tests := []struct {
			name     string
			mutate   func(i *Identity)
		}{
			{"empty account", func(i *Identity) { i.AccountID = "" }},
			{"uppercase account", func(i *Identity) { i.AccountID = "Alice.Near" }},
			{"empty namespace", func(i *Identity) { i.Namespace = "" }},
			{"namespace with slash", func(i *Identity) { i.Namespace = "app/sub" }},
			{"group suffix with slash", func(i *Identity) { i.GroupSuffix = "a/b" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				identity := valid
				tt.mutate(&identity)
				err := identity.Validate()
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			})
		}
	})
}

func TestIdentity_Naming(t *testing.T) {
	identity := Identity{AccountID: "alice.near", Namespace: "app", GroupSuffix: "team"}

	assert.Equal(t, "alice.near/team", identity.GroupID())
	assert.Equal(t, "app/alice.near/", identity.Prefix())
	assert.Equal(t, "app/alice.near/password", identity.FullKey("password"))
	assert.Equal(t, "app/alice.near/db/primary", identity.FullKey("db/primary"))
}

func TestIdentity_StripPrefix(t *testing.T) {
	identity := Identity{AccountID: "alice.near", Namespace: "app", GroupSuffix: "team"}

	keys := []string{
		"app/alice.near/password",
		"app/alice.near/db/primary",
		"app/bob.near/password",
		"other/alice.near/password",
		"app/alice.near/",
	}

	assert.Equal(t, []string{"password", "db/primary"}, identity.StripPrefix(keys))
}

func TestValidateUserKey(t *testing.T) {
	assert.NoError(t, ValidateUserKey("password"))
	assert.NoError(t, ValidateUserKey("db/primary"))

	for _, key := range []string{"", "/leading", "trailing/", "a//b"} {
		assert.ErrorIs(t, ValidateUserKey(key), apperrors.ErrInvalidInput, key)
	}
}
