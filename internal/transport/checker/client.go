// Package checker is the HTTP client for the availability collaborator:
// handle checks, domain checks, the platform catalog, and the vibe table.
package checker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/seeklab/handlescout/internal/domain"
	"github.com/seeklab/handlescout/internal/domain/search/payload"
	"github.com/seeklab/handlescout/internal/domain/search/result"
)

// Client talks to the availability service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client with the given base URL and request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type itemDTO struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
	Quality  int    `json:"quality"`
}

type checkResponse struct {
	Results  []itemDTO       `json:"results,omitempty"`
	Statuses map[string]bool `json:"statuses,omitempty"`
}

// CheckAvailability posts the payload and decodes either the list shape
// (smart, random) or the map shape (matrix), whichever the service returned.
func (c *Client) CheckAvailability(ctx context.Context, p *payload.Payload) (result.Availability, error) {
	var resp checkResponse
	if err := c.post(ctx, "/api/check", p, &resp); err != nil {
		return result.Availability{}, err
	}

	if resp.Statuses != nil {
		return result.MapAvailability(resp.Statuses), nil
	}
	items := make([]result.Item, 0, len(resp.Results))
	for _, dto := range resp.Results {
		items = append(items, result.NewItem(dto.Platform, dto.Username, dto.Quality))
	}
	return result.ListAvailability(items), nil
}

// CheckDomains posts the keyword and returns domain availability.
func (c *Client) CheckDomains(ctx context.Context, keyword string) (result.StatusMap, error) {
	req := struct {
		Keyword string `json:"keyword"`
	}{Keyword: keyword}
	var resp struct {
		Domains map[string]bool `json:"domains"`
	}
	if err := c.post(ctx, "/api/domains", req, &resp); err != nil {
		return nil, err
	}
	return resp.Domains, nil
}

// GetPlatforms fetches the platform catalog.
func (c *Client) GetPlatforms(ctx context.Context) ([]string, error) {
	var resp struct {
		Platforms []string `json:"platforms"`
	}
	if err := c.get(ctx, "/api/platforms", &resp); err != nil {
		return nil, err
	}
	return resp.Platforms, nil
}

// GetVibes fetches the vibe table. The endpoint is optional: a 404 returns
// a nil table and no error.
func (c *Client) GetVibes(ctx context.Context) (map[string]string, error) {
	var resp struct {
		Vibes map[string]string `json:"vibes"`
	}
	err := c.get(ctx, "/api/vibes", &resp)
	if err != nil {
		var nerr *domain.NetworkError
		if errors.As(err, &nerr) && nerr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return resp.Vibes, nil
}

// HealthCheck probes the service's health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.NewNetwork(resp.StatusCode, errorMessage(resp.Body))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the collaborator's error envelope, tolerating
// non-JSON bodies.
func errorMessage(r io.Reader) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return ""
	}
	return envelope.Error
}
