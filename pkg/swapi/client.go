// Package swapi is a minimal client for the planets endpoint of the Star
// Wars API, plus an in-memory fixture server that speaks the same shape.
package swapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://swapi.dev/api"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrInvalidID is returned for ids below 1.
	ErrInvalidID = stderrors.New("swapi: invalid id")
	// ErrMalformed is returned when a response lacks the expected fields.
	ErrMalformed = stderrors.New("swapi: malformed response")
)

// Planet is the subset of the planet resource the demos use. SWAPI
// encodes every attribute as a string, including numbers and "unknown".
type Planet struct {
	Name           string `json:"name"`
	RotationPeriod string `json:"rotation_period,omitempty"`
	OrbitalPeriod  string `json:"orbital_period,omitempty"`
	Diameter       string `json:"diameter,omitempty"`
	Climate        string `json:"climate,omitempty"`
	Gravity        string `json:"gravity,omitempty"`
	Terrain        string `json:"terrain,omitempty"`
	Population     string `json:"population,omitempty"`
	URL            string `json:"url,omitempty"`
}

// PlanetSource looks planets up by id.
type PlanetSource interface {
	Planet(ctx context.Context, id int) (Planet, error)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("swapi: %s returned %s", e.URL, e.Status)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return stderrors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// Client fetches resources over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its timeout is kept.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client rooted at baseURL with the given timeout.
// An empty baseURL means DefaultBaseURL; a non-positive timeout means
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Planet fetches {base}/planets/{id}/.
func (c *Client) Planet(ctx context.Context, id int) (Planet, error) {
	if id < 1 {
		return Planet{}, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	var planet Planet
	if err := c.getJSON(ctx, fmt.Sprintf("/planets/%d/", id), &planet); err != nil {
		return Planet{}, err
	}
	if planet.Name == "" {
		return Planet{}, fmt.Errorf("%w: planet %d has no name", ErrMalformed, id)
	}
	return planet, nil
}

// getJSON fetches base+path and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("swapi response",
		"url", url,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}
