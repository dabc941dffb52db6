package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

// Manifest describes a page served by a manifest endpoint.
type Manifest struct {
	Route  string        `json:"route"`
	Title  string        `json:"title"`
	Kind   string        `json:"kind,omitempty"`
	Params router.Params `json:"params,omitempty"`
}

// Factory turns a fetched manifest into a page builder.
type Factory func(m Manifest) (router.PageBuilder, error)

// HTTP resolves routes by fetching GET {BaseURL}/routes/{route}.
// A 404 response means the route does not exist.
type HTTP struct {
	BaseURL string
	Client  *http.Client
	Factory Factory
}

// NewHTTP creates an HTTP resolver with a client bounded by timeout.
func NewHTTP(baseURL string, timeout time.Duration, factory Factory) *HTTP {
	return &HTTP{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Factory: factory,
	}
}

func (h *HTTP) Resolve(ctx context.Context, route string) (router.PageBuilder, error) {
	m, err := h.Fetch(ctx, route)
	if err != nil {
		return nil, err
	}
	if h.Factory == nil {
		return nil, fmt.Errorf("resolver: no factory for manifest %q", m.Route)
	}
	return h.Factory(m)
}

// Fetch downloads and decodes the manifest for route.
func (h *HTTP) Fetch(ctx context.Context, route string) (Manifest, error) {
	endpoint := h.BaseURL + "/routes/" + url.PathEscape(route)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Manifest{}, fmt.Errorf("resolver: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Manifest{}, fmt.Errorf("resolver: fetch %s: %w", route, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Manifest{}, router.ErrNotRegistered
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Manifest{}, fmt.Errorf("resolver: fetch %s: status %d: %s", route, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var m Manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("resolver: decode manifest for %s: %w", route, err)
	}
	if m.Route == "" {
		m.Route = route
	}
	return m, nil
}
