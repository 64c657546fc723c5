package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.SearchAdapter = (*SerperAdapter)(nil)

// SerperAdapter implements adapter.SearchAdapter against serper.dev, a
// Google-search gateway used for live grounding.
// Endpoint: POST https://google.serper.dev/search with X-API-KEY header.
type SerperAdapter struct {
	apiKey string
	base   string
	client *http.Client
}

func NewSerperAdapter(apiKey string) (*SerperAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("serper api key empty")
	}
	return &SerperAdapter{
		apiKey: apiKey,
		base:   "https://google.serper.dev",
		client: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// WithBase overrides the endpoint. Tests point it at an httptest server.
func (s *SerperAdapter) WithBase(base string) *SerperAdapter {
	s.base = strings.TrimRight(base, "/")
	return s
}

func (s *SerperAdapter) Search(ctx context.Context, query string, limit int) ([]adapter.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("empty search query")
	}
	if limit <= 0 {
		limit = 5
	}

	reqBody := struct {
		Q   string `json:"q"`
		Num int    `json:"num"`
	}{Q: query, Num: limit}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.base+"/search", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("serper http %d", resp.StatusCode)
	}

	var payload struct {
		Organic []adapter.SearchResult `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Organic) > limit {
		payload.Organic = payload.Organic[:limit]
	}
	return payload.Organic, nil
}
