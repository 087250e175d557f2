package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/places"
)

// Common errors
var (
	ErrBadRequest     = errors.New("search proxy rejected the request")
	ErrUpstreamFailed = errors.New("search proxy upstream failure")
)

// Client handles communication with the search proxy
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new search proxy client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Search asks the proxy for places around center matching the comma-separated query
func (c *Client) Search(ctx context.Context, center geo.Coordinate, query string, radius int) ([]places.Place, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	params.Add("lng", strconv.FormatFloat(center.Lng, 'f', -1, 64))
	params.Add("query", query)
	params.Add("radius", strconv.Itoa(radius))

	url := fmt.Sprintf("%s/api/recommend?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)

		switch {
		case resp.StatusCode == http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %s", ErrBadRequest, failure.Error)
		case resp.StatusCode >= http.StatusInternalServerError:
			return nil, fmt.Errorf("%w: %s", ErrUpstreamFailed, failure.Error)
		}
		return nil, fmt.Errorf("search proxy returned status %d", resp.StatusCode)
	}

	var result struct {
		Documents []places.Place `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Documents, nil
}
