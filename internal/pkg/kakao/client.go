package kakao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

// Config holds settings for the Kakao REST clients
type Config struct {
	RESTAPIKey      string
	LocalBaseURL    string
	MobilityBaseURL string
	Timeout         time.Duration
}

// Client talks to the Kakao Local and Kakao Mobility REST APIs.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Kakao API client
func NewClient(config Config, logger zerolog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Place is a single Kakao Local search result
type Place struct {
	ID                string `json:"id"`
	PlaceName         string `json:"place_name"`
	CategoryGroupCode string `json:"category_group_code"`
	CategoryGroupName string `json:"category_group_name"`
	AddressName       string `json:"address_name"`
	PlaceURL          string `json:"place_url"`
	X                 string `json:"x"` // longitude
	Y                 string `json:"y"` // latitude
	Distance          string `json:"distance"`
}

// categorySearchResponse is the Kakao Local category search payload
type categorySearchResponse struct {
	Documents []Place `json:"documents"`
	Meta      struct {
		TotalCount    int  `json:"total_count"`
		IsEnd         bool `json:"is_end"`
		PageableCount int  `json:"pageable_count"`
	} `json:"meta"`
}

// SearchByCategory queries Kakao Local for places of a category group
// (e.g. FD6 restaurants, CE7 cafes) around a coordinate.
func (c *Client) SearchByCategory(ctx context.Context, categoryGroupCode string, lng, lat float64, radiusM int) ([]Place, error) {
	endpoint := c.config.LocalBaseURL + "/v2/local/search/category.json"

	params := url.Values{}
	params.Set("category_group_code", categoryGroupCode)
	params.Set("x", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("y", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radiusM))
	params.Set("sort", "distance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build kakao local request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.config.RESTAPIKey)

	var result categorySearchResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("category", categoryGroupCode).
		Int("count", len(result.Documents)).
		Msg("Kakao category search completed")
	return result.Documents, nil
}

// Coord is a single route coordinate
type Coord struct {
	Name string  `json:"name,omitempty"`
	X    float64 `json:"x"` // longitude
	Y    float64 `json:"y"` // latitude
}

// RouteSummary is the summary of an optimized route
type RouteSummary struct {
	Distance int `json:"distance"` // meters
	Duration int `json:"duration"` // seconds
}

// directionsRequest is the Kakao Mobility waypoint directions payload
type directionsRequest struct {
	Origin      Coord   `json:"origin"`
	Destination Coord   `json:"destination"`
	Waypoints   []Coord `json:"waypoints,omitempty"`
	Priority    string  `json:"priority"`
}

// directionsResponse mirrors the subset of the Mobility response we use
type directionsResponse struct {
	Routes []struct {
		ResultCode int          `json:"result_code"`
		ResultMsg  string       `json:"result_msg"`
		Summary    RouteSummary `json:"summary"`
	} `json:"routes"`
}

// RequestRoute asks Kakao Mobility for a recommended route through the
// given waypoints and returns its summary.
func (c *Client) RequestRoute(ctx context.Context, origin, destination Coord, waypoints []Coord) (*RouteSummary, error) {
	endpoint := c.config.MobilityBaseURL + "/v1/waypoints/directions"

	body, err := json.Marshal(directionsRequest{
		Origin:      origin,
		Destination: destination,
		Waypoints:   waypoints,
		Priority:    "RECOMMEND",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal directions request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build kakao mobility request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.config.RESTAPIKey)
	req.Header.Set("Content-Type", "application/json")

	var result directionsResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	if len(result.Routes) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrExternalService, "kakao mobility returned no routes")
	}
	route := result.Routes[0]
	if route.ResultCode != 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrExternalService,
			fmt.Sprintf("kakao mobility error %d: %s", route.ResultCode, route.ResultMsg))
	}

	return &route.Summary, nil
}

// do executes a request and decodes the JSON response into out
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrExternalService, fmt.Sprintf("kakao request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("url", req.URL.Path).
			Str("body", string(snippet)).
			Msg("Kakao API returned non-200")
		return apperrors.NewCustomError(apperrors.ErrExternalService,
			fmt.Sprintf("kakao API returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewCustomError(apperrors.ErrExternalService, fmt.Sprintf("failed to decode kakao response: %v", err))
	}
	return nil
}
