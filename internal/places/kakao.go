package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultKakaoBaseURL is the Kakao Local API host
const DefaultKakaoBaseURL = "https://dapi.kakao.com"

// kakaoSearchResponse is the keyword search payload; only documents are used
type kakaoSearchResponse struct {
	Documents []Place `json:"documents"`
}

// KakaoClient handles keyword searches against the Kakao Local API
type KakaoClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewKakaoClient creates a new Kakao Local API client
func NewKakaoClient(baseURL, apiKey string, timeout time.Duration) *KakaoClient {
	return &KakaoClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchKeyword runs one keyword search centred on req.Center
func (c *KakaoClient) SearchKeyword(ctx context.Context, req KeywordRequest) ([]Place, error) {
	params := url.Values{}
	params.Add("query", req.Keyword)
	params.Add("y", strconv.FormatFloat(req.Center.Lat, 'f', -1, 64))
	params.Add("x", strconv.FormatFloat(req.Center.Lng, 'f', -1, 64))
	params.Add("radius", strconv.Itoa(req.Radius))

	url := fmt.Sprintf("%s/v2/local/search/keyword.json?%s", c.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("kakao local API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result kakaoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode kakao response: %w", err)
	}

	return result.Documents, nil
}
