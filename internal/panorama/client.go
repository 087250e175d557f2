package panorama

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
)

// DefaultBaseURL is the Street View Static API host
const DefaultBaseURL = "https://maps.googleapis.com"

// Common errors
var (
	ErrNoPanorama = errors.New("no panorama near location")
	ErrMissingKey = errors.New("panorama API key not configured")
)

// metadataResponse is the Street View metadata payload
type metadataResponse struct {
	Status   string         `json:"status"`
	PanoID   string         `json:"pano_id"`
	Location geo.Coordinate `json:"location"`
	Date     string         `json:"date"`
}

// Panorama identifies one street-level image set
type Panorama struct {
	ID       string
	Position geo.Coordinate
	ImageURL string
}

// Client finds the nearest street-level panorama for a coordinate
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new panorama lookup client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Nearest returns the closest panorama within radius meters of position
func (c *Client) Nearest(ctx context.Context, position geo.Coordinate, radius int) (*Panorama, error) {
	if c.apiKey == "" {
		return nil, ErrMissingKey
	}

	params := url.Values{}
	params.Add("location", position.String())
	params.Add("radius", strconv.Itoa(radius))
	params.Add("source", "outdoor")
	params.Add("key", c.apiKey)

	url := fmt.Sprintf("%s/maps/api/streetview/metadata?%s", c.baseURL, params.Encode())

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
		return nil, fmt.Errorf("street view metadata returned status %d", resp.StatusCode)
	}

	var metadata metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, err
	}

	switch metadata.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, ErrNoPanorama
	default:
		return nil, fmt.Errorf("street view metadata status %s", metadata.Status)
	}

	return &Panorama{
		ID:       metadata.PanoID,
		Position: metadata.Location,
		ImageURL: c.imageURL(metadata.PanoID),
	}, nil
}

func (c *Client) imageURL(panoID string) string {
	params := url.Values{}
	params.Add("size", "640x320")
	params.Add("pano", panoID)
	params.Add("key", c.apiKey)
	return fmt.Sprintf("%s/maps/api/streetview?%s", c.baseURL, params.Encode())
}
