package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anchorDomain "github.com/fastkv/fastkv-go/internal/trustanchor/domain"
)

func TestNewHTTPSignFunc(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the envelope and decodes the response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var envelope anchorDomain.InvocationEnvelope
			require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
			assert.Equal(t, anchorDomain.ActionWrapKey, envelope.Request.Action)
			assert.Equal(t, "alice.near/team", envelope.Request.GroupID)
			assert.NotEmpty(t, envelope.ID)

			_ = json.NewEncoder(w).Encode(anchorDomain.InvocationResponse{
				WrappedKeyB64: "d3JhcHBlZA==",
				KeyID:         "kid-1",
			})
		}))
		defer server.Close()

		sign := NewHTTPSignFunc(server.URL, nil)
		resp, err := sign(ctx, anchorDomain.InvocationEnvelope{
			ID: "test-id",
			Request: anchorDomain.InvocationRequest{
				Action:          anchorDomain.ActionWrapKey,
				GroupID:         "alice.near/team",
				PlaintextKeyB64: "a2V5",
			},
			Limits: anchorDomain.DefaultResourceLimits(),
		})
		require.NoError(t, err)
		assert.Equal(t, "d3JhcHBlZA==", resp.WrappedKeyB64)
		assert.Equal(t, "kid-1", resp.KeyID)
	})

	t.Run("bare 403 becomes a coded error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("{}"))
		}))
		defer server.Close()

		sign := NewHTTPSignFunc(server.URL, nil)
		resp, err := sign(ctx, anchorDomain.InvocationEnvelope{ID: "test-id"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("unreachable signer fails", func(t *testing.T) {
		sign := NewHTTPSignFunc("http://127.0.0.1:1", nil)
		_, err := sign(ctx, anchorDomain.InvocationEnvelope{ID: "test-id"})
		assert.Error(t, err)
	})

	t.Run("wired through the anchor it maps onto the taxonomy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(anchorDomain.InvocationResponse{
				Error: "caller is not a member of the group",
				Code:  http.StatusForbidden,
			})
		}))
		defer server.Close()

		anchor := NewOutLayerAnchor(NewHTTPSignFunc(server.URL, nil), anchorDomain.ResourceLimits{})
		_, err := anchor.UnwrapKey(ctx, "alice.near/team", "d3JhcHBlZA==")
		assert.ErrorIs(t, err, anchorDomain.ErrGroupUnauthorized)
	})
}
