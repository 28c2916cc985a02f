package nominatim

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
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org/reverse"
	defaultUserAgent = "WeatherChap/1.0"
)

// ErrNoPlaceName is returned when the address has no city, town or village.
var ErrNoPlaceName = errors.New("no place name in reverse geocoding result")

// Client resolves coordinates to a settlement name using OpenStreetMap Nominatim.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a reverse geocoding client. Nominatim rejects requests
// without an identifying User-Agent.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(endpoint, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ReverseGeocode returns the city, town or village at the coordinates.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build reverse geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("reverse geocode error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}
	if raw.Error != "" {
		return "", fmt.Errorf("reverse geocode api error: %s", raw.Error)
	}
	for _, name := range []string{raw.Address.City, raw.Address.Town, raw.Address.Village} {
		if strings.TrimSpace(name) != "" {
			return name, nil
		}
	}
	return "", ErrNoPlaceName
}

type apiResponse struct {
	Error   string     `json:"error"`
	Address apiAddress `json:"address"`
}

type apiAddress struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
}
