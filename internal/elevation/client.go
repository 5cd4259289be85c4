// Package elevation is a client for the course elevation service. The service
// owns the GPX math; this side only fetches precomputed course profiles.
package elevation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
	"git.home.luguber.info/inful/seobuilder/internal/logfields"
	"git.home.luguber.info/inful/seobuilder/internal/retry"
)

// ErrNotFound is returned when the service has no profile for a course.
var ErrNotFound = errors.New("elevation profile not found")

// Segment is one sampled stretch of a course.
type Segment struct {
	StartKM   float64 `json:"startKm"`
	EndKM     float64 `json:"endKm"`
	Elevation float64 `json:"elevation"`
	Grade     float64 `json:"grade"`
}

// Profile is the precomputed elevation summary for one course.
type Profile struct {
	Course   string    `json:"course"`
	Gain     int       `json:"gain"`
	Loss     int       `json:"loss"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Segments []Segment `json:"segments,omitempty"`
}

// Client fetches course profiles over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     retry.Policy
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryPolicy sets the retry policy used for transient failures.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil || baseURL == "" {
		return nil, seoerrors.ValidationFailed("elevation.url", "must be a valid URL")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		policy:     retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Profile returns the elevation profile for the course with the given slug.
// 5xx and 429 responses and timeouts are retried per the client's policy.
func (c *Client) Profile(ctx context.Context, course string) (*Profile, error) {
	endpoint, err := c.endpoint(course)
	if err != nil {
		return nil, err
	}

	var out Profile
	attempt := 0
	err = c.policy.Do(ctx, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			slog.Debug("Retrying elevation request", logfields.URL(endpoint), slog.Int("attempt", attempt))
		}
		return c.fetch(ctx, endpoint, &out)
	})
	if err != nil {
		return nil, err
	}
	if out.Course == "" {
		out.Course = course
	}
	return &out, nil
}

func (c *Client) endpoint(course string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u.Path = path.Join(u.Path, "courses", course, "elevation")
	return u.String(), nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, out *Profile) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return seoerrors.NetworkTimeout(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, endpoint)
	case resp.StatusCode >= 400:
		return seoerrors.UpstreamStatus(endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return seoerrors.Wrap(err, seoerrors.CategoryNetwork, seoerrors.SeverityWarning, "decode elevation profile").
			WithContext("url", endpoint)
	}
	return nil
}
