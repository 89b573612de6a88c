package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	storageDomain "github.com/fastkv/fastkv-go/internal/storage/domain"
)

// HTTPStore talks to a FastKV indexer over HTTP. Records are addressed by
// (accountID, contractID, key); list is a prefix query. The client performs
// no retries and sets no timeout of its own; both belong to the injected
// http.Client and the caller's context. A 404 on Get is the normal absent
// outcome, never an error.
type HTTPStore struct {
	baseURL    string
	accountID  string
	contractID string
	client     *http.Client
}

// setResponse is the write acknowledgement returned by the indexer.
type setResponse struct {
	TxHash string `json:"tx_hash"`
}

// listResponse is the prefix-query response returned by the indexer.
type listResponse struct {
	Keys []string `json:"keys"`
}

// NewHTTPStore creates an HTTPStore for the given indexer endpoint. A nil
// client falls back to a pooled cleanhttp client.
func NewHTTPStore(baseURL, accountID, contractID string, client *http.Client) *HTTPStore {
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return &HTTPStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountID:  accountID,
		contractID: contractID,
		client:     client,
	}
}

// Set persists the entry, returning the transaction hash as receipt when the
// indexer provides one.
func (s *HTTPStore) Set(
	ctx context.Context,
	key string,
	entry storageDomain.EncryptedEntry,
) (*storageDomain.Receipt, error) {
	body, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, s.entryURL(key), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, s.statusError("set", resp)
	}

	var ack setResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil || ack.TxHash == "" {
		// A write acknowledgement without a receipt is still a success.
		return nil, nil
	}
	return &storageDomain.Receipt{ID: ack.TxHash}, nil
}

// Get fetches the entry, mapping 404 to the nil absent outcome.
func (s *HTTPStore) Get(ctx context.Context, key string) (*storageDomain.EncryptedEntry, error) {
	resp, err := s.do(ctx, http.MethodGet, s.entryURL(key), nil)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, s.statusError("get", resp)
	}

	var entry storageDomain.EncryptedEntry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return nil, fmt.Errorf("%w: %v", storageDomain.ErrInvalidEntry, err)
	}
	return &entry, nil
}

// Delete removes the entry. A 404 means the key was already absent.
func (s *HTTPStore) Delete(ctx context.Context, key string) (*storageDomain.Receipt, error) {
	resp, err := s.do(ctx, http.MethodDelete, s.entryURL(key), nil)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, s.statusError("delete", resp)
	}

	var ack setResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil || ack.TxHash == "" {
		return nil, nil
	}
	return &storageDomain.Receipt{ID: ack.TxHash}, nil
}

// List runs a prefix query.
func (s *HTTPStore) List(ctx context.Context, prefix string) ([]string, error) {
	listURL := fmt.Sprintf(
		"%s/v1/kv/%s/%s?prefix=%s",
		s.baseURL,
		url.PathEscape(s.accountID),
		url.PathEscape(s.contractID),
		url.QueryEscape(prefix),
	)

	resp, err := s.do(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, s.statusError("list", resp)
	}

	var result listResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: malformed list response: %v", storageDomain.ErrStoreUnavailable, err)
	}
	return result.Keys, nil
}

func (s *HTTPStore) entryURL(key string) string {
	return fmt.Sprintf(
		"%s/v1/kv/%s/%s/%s",
		s.baseURL,
		url.PathEscape(s.accountID),
		url.PathEscape(s.contractID),
		url.PathEscape(key),
	)
}

func (s *HTTPStore) do(ctx context.Context, method, rawURL string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storageDomain.ErrStoreUnavailable, err)
	}
	return resp, nil
}

func (s *HTTPStore) statusError(op string, resp *http.Response) error {
	return fmt.Errorf(
		"%w: %s returned status %d", storageDomain.ErrStoreUnavailable, op, resp.StatusCode,
	)
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
