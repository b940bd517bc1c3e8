// Package geodata looks up city coordinates and nearby attractions through
// the OpenTripMap places API.
package geodata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/travelbuddy/internal/domain"
)

// DefaultBaseURL is the OpenTripMap places endpoint.
const DefaultBaseURL = "https://api.opentripmap.com/0.1/en/places"

// RetryPolicy bounds how often a request is attempted when the upstream
// answers with a server error or rate limiting, or the transport fails.
// Backoff receives the 1-based number of the attempt that just failed.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// LinearBackoff waits base, 2*base, 3*base, ... between attempts.
func LinearBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration { return base * time.Duration(attempt) }
}

// DefaultRetryPolicy makes three attempts, 500ms apart and growing linearly.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: LinearBackoff(500 * time.Millisecond)}
}

// backoff adapts the policy to go-retry. A fresh value is needed per request
// because it counts attempts.
func (p RetryPolicy) backoff() retry.Backoff {
	maxAttempts := max(p.MaxAttempts, 1)
	wait := p.Backoff
	if wait == nil {
		wait = func(int) time.Duration { return 0 }
	}
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		if attempt >= maxAttempts {
			return 0, true
		}
		return wait(attempt), false
	})
}

// Client talks to OpenTripMap. Construct it with New.
type Client struct {
	baseURL string
	apiKey  string
	policy  RetryPolicy
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithRetryPolicy replaces DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.policy = p }
}

// WithHTTPClient replaces the default 15 second timeout client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New constructs a Client. An empty apiKey is accepted; every lookup then
// fails with domain.ErrMissingCredential.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		policy:  DefaultRetryPolicy(),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type geoname struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// Geocode returns the coordinates of city.
// Returns domain.ErrNotFound when OpenTripMap knows no such place.
func (c *Client) Geocode(ctx context.Context, city string) (lat, lon float64, err error) {
	var g geoname
	if err := c.get(ctx, "/geoname", url.Values{"name": {city}}, &g); err != nil {
		return 0, 0, fmt.Errorf("geodata.Client.Geocode: %w", err)
	}
	if g.Lat == nil || g.Lon == nil {
		return 0, 0, fmt.Errorf("geodata.Client.Geocode: %w: no coordinates for %q", domain.ErrNotFound, city)
	}
	return *g.Lat, *g.Lon, nil
}

type place struct {
	Name string `json:"name"`
}

// NearbyPointsOfInterest returns the names of up to limit attractions within
// radius metres of the given point. Unnamed places are left out.
func (c *Client) NearbyPointsOfInterest(ctx context.Context, lat, lon float64, radius, limit int) ([]string, error) {
	q := url.Values{
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":    {strconv.FormatFloat(lon, 'f', -1, 64)},
		"radius": {strconv.Itoa(radius)},
		"limit":  {strconv.Itoa(limit)},
		"rate":   {"3"},
		"format": {"json"},
	}
	var places []place
	if err := c.get(ctx, "/radius", q, &places); err != nil {
		return nil, fmt.Errorf("geodata.Client.NearbyPointsOfInterest: %w", err)
	}
	names := make([]string, 0, len(places))
	for _, p := range places {
		if n := strings.TrimSpace(p.Name); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

// AttractionsForCity geocodes city and lists the attractions around it.
func (c *Client) AttractionsForCity(ctx context.Context, city string, radius, limit int) ([]string, error) {
	lat, lon, err := c.Geocode(ctx, city)
	if err != nil {
		return nil, err
	}
	return c.NearbyPointsOfInterest(ctx, lat, lon, radius, limit)
}

// get performs a GET with the retry policy and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: OPENTRIPMAP_API_KEY is not set", domain.ErrMissingCredential)
	}
	q.Set("apikey", c.apiKey)
	endpoint := c.baseURL + path + "?" + q.Encode()

	var body []byte
	err := retry.Do(ctx, c.policy.backoff(), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return retry.RetryableError(err)
		}
		switch {
		case resp.StatusCode == http.StatusOK:
			body = b
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: HTTP 404", domain.ErrNotFound)
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return retry.RetryableError(fmt.Errorf("HTTP %d", resp.StatusCode))
		default:
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrRequestFailed, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: unexpected response: %v", domain.ErrRequestFailed, err)
	}
	return nil
}
