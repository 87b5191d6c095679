// Package geo resolves client IP addresses to a coarse location.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Unknown is used for every field the lookup could not resolve
const Unknown = "Unknown"

// Location is the coarse position of an IP address
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
}

// UnknownLocation is returned when no lookup is possible
func UnknownLocation() Location {
	return Location{Country: Unknown, Region: Unknown, City: Unknown}
}

// Client queries an ipinfo compatible HTTP API: GET {base}/{ip}/geo?token=...
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a lookup client with the given request timeout
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup resolves ip. Private, loopback and unparsable addresses resolve to UnknownLocation
// without a network call. Blank fields in the response are reported as Unknown.
func (c *Client) Lookup(ctx context.Context, ip string) (Location, error) {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return UnknownLocation(), nil
	}

	endpoint := fmt.Sprintf("%s/%s/geo", c.baseURL, url.PathEscape(parsed.String()))
	if c.token != "" {
		endpoint += "?token=" + url.QueryEscape(c.token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return UnknownLocation(), fmt.Errorf("failed to build geo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return UnknownLocation(), fmt.Errorf("geo lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UnknownLocation(), fmt.Errorf("geo lookup returned status %d", resp.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return UnknownLocation(), fmt.Errorf("failed to decode geo response: %w", err)
	}
	return loc.withDefaults(), nil
}

func (l Location) withDefaults() Location {
	if strings.TrimSpace(l.Country) == "" {
		l.Country = Unknown
	}
	if strings.TrimSpace(l.Region) == "" {
		l.Region = Unknown
	}
	if strings.TrimSpace(l.City) == "" {
		l.City = Unknown
	}
	return l
}
