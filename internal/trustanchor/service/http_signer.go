package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"

	anchorDomain "github.com/fastkv/fastkv-go/internal/trustanchor/domain"
)

// NewHTTPSignFunc returns a SignFunc that posts the invocation envelope as
// JSON to a signer endpoint and decodes the response. The signer process
// owns the credentials; this side only speaks the envelope protocol. A nil
// client falls back to a pooled default.
func NewHTTPSignFunc(endpoint string, client *http.Client) SignFunc {
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}

	return func(
		ctx context.Context,
		envelope anchorDomain.InvocationEnvelope,
	) (anchorDomain.InvocationResponse, error) {
		body, err := json.Marshal(envelope)
		if err != nil {
			return anchorDomain.InvocationResponse{}, fmt.Errorf("failed to encode envelope: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return anchorDomain.InvocationResponse{}, fmt.Errorf("failed to build signer request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		httpResp, err := client.Do(req)
		if err != nil {
			return anchorDomain.InvocationResponse{}, fmt.Errorf("signer request failed: %w", err)
		}
		defer func() {
			_, _ = io.Copy(io.Discard, httpResp.Body)
			_ = httpResp.Body.Close()
		}()

		var resp anchorDomain.InvocationResponse
		if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
			return anchorDomain.InvocationResponse{}, fmt.Errorf("failed to decode signer response: %w", err)
		}

		// Non-2xx with an empty body error field still carries the status.
		if httpResp.StatusCode >= 400 && resp.Error == "" {
			resp.Error = http.StatusText(httpResp.StatusCode)
			resp.Code = httpResp.StatusCode
		}

		return resp, nil
	}
}
