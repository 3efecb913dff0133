// Package client consumes the carMuseum content API, either over HTTP or
// directly from an in-process QueryService.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	carmuseum "github.com/logan676/carMuseum"
)

// Source is everything a front-end needs to render content.
type Source interface {
	Health(ctx context.Context) (string, error)
	News(ctx context.Context, category string) (carmuseum.NewsResult, error)
	Models(ctx context.Context) (carmuseum.ModelsResult, error)
	Brands(ctx context.Context) ([]carmuseum.Brand, error)
	Garage(ctx context.Context) ([]carmuseum.GarageVehicle, error)
	Dealerships(ctx context.Context) ([]carmuseum.Dealership, error)
	Projects(ctx context.Context) (carmuseum.ProjectsResult, error)
	Summary(ctx context.Context) (carmuseum.Dataset, error)
}

// APIError reports a non-2xx response.
type APIError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, e.Status)
}

// Client calls the content API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The client passed in is
// never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. It applies regardless of option
// order, to a copy of any client given with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New constructs a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

var _ Source = (*Client)(nil)

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) Health(ctx context.Context) (string, error) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", &body); err != nil {
		return "", err
	}
	return body.Status, nil
}

// News fetches articles. The category is only sent when it narrows the
// result, so "" and "All" request the same URL.
func (c *Client) News(ctx context.Context, category string) (carmuseum.NewsResult, error) {
	endpoint := "/api/news"
	if category != "" && category != carmuseum.CategoryAll {
		endpoint += "?category=" + url.QueryEscape(category)
	}
	var res carmuseum.NewsResult
	err := c.get(ctx, endpoint, &res)
	return res, err
}

func (c *Client) Models(ctx context.Context) (carmuseum.ModelsResult, error) {
	var res carmuseum.ModelsResult
	err := c.get(ctx, "/api/models", &res)
	return res, err
}

func (c *Client) Brands(ctx context.Context) ([]carmuseum.Brand, error) {
	var body struct {
		Data []carmuseum.Brand `json:"data"`
	}
	err := c.get(ctx, "/api/brands", &body)
	return body.Data, err
}

func (c *Client) Garage(ctx context.Context) ([]carmuseum.GarageVehicle, error) {
	var body struct {
		Vehicles []carmuseum.GarageVehicle `json:"vehicles"`
	}
	err := c.get(ctx, "/api/garage", &body)
	return body.Vehicles, err
}

func (c *Client) Dealerships(ctx context.Context) ([]carmuseum.Dealership, error) {
	var body struct {
		Data []carmuseum.Dealership `json:"data"`
	}
	err := c.get(ctx, "/api/dealerships", &body)
	return body.Data, err
}

func (c *Client) Projects(ctx context.Context) (carmuseum.ProjectsResult, error) {
	var res carmuseum.ProjectsResult
	err := c.get(ctx, "/api/projects", &res)
	return res, err
}

func (c *Client) Summary(ctx context.Context) (carmuseum.Dataset, error) {
	var res carmuseum.Dataset
	err := c.get(ctx, "/api/summary", &res)
	return res, err
}
