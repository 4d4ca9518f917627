// Package geocode resolves UK postcodes to centroid coordinates through a
// postcodes.io compatible lookup service.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// ErrNotFound is returned when the service has no match for the postcode.
// Transport failures are returned as ordinary errors instead, so callers can
// tell an unknown postcode from an unreachable service.
var ErrNotFound = errors.New("postcode not found")

// Client talks to the postcode resolution service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client for the given service base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	Status int `json:"status"`
	Result *struct {
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
	} `json:"result"`
}

// Resolve geocodes a postcode to its centroid in EPSG:4326. Whitespace in
// the postcode is ignored, so "N1 9GU" and "N19GU" resolve identically.
// One request per call: no retries, no caching.
func (c *Client) Resolve(ctx context.Context, postcode string) (orb.Point, error) {
	normalized := strings.Join(strings.Fields(postcode), "")
	if normalized == "" {
		return orb.Point{}, ErrNotFound
	}

	endpoint := fmt.Sprintf("%s/postcodes/%s", c.BaseURL, url.PathEscape(normalized))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return orb.Point{}, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return orb.Point{}, fmt.Errorf("postcode lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return orb.Point{}, ErrNotFound
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return orb.Point{}, fmt.Errorf("postcode lookup: %w", err)
	}
	if body.Status != http.StatusOK || body.Result == nil {
		return orb.Point{}, ErrNotFound
	}

	return orb.Point{body.Result.Longitude, body.Result.Latitude}, nil
}
