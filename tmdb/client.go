package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the TMDB v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client represents a TMDB API client bound to a fixed base address
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
// An empty apiKey is allowed; callers may then pass api_key per request.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: tmdb URL is required", ErrInvalidConfig)
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid tmdb URL %q", ErrInvalidConfig, baseURL)
	}

	options := clientOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		language:   options.language,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the address every request is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildURL joins a relative path onto the base address and merges query
// parameters. Parameters already present on path are kept; params override
// them key by key.
func (c *Client) buildURL(path string, params url.Values) (string, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	if rel.IsAbs() || rel.Host != "" {
		return "", fmt.Errorf("path %q must be relative to %s", path, c.baseURL)
	}

	query := rel.Query()
	for key, values := range params {
		query[key] = values
	}
	if c.apiKey != "" && query.Get("api_key") == "" {
		query.Set("api_key", c.apiKey)
	}
	if c.language != "" && query.Get("language") == "" {
		query.Set("language", c.language)
	}

	p := rel.EscapedPath()
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	full := c.baseURL + p
	if encoded := query.Encode(); encoded != "" {
		full += "?" + encoded
	}
	return full, nil
}

// Get performs a GET request against a path relative to the base address
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	target, err := c.buildURL(path, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("path", path).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Body:       string(body),
	}

	var payload errorResponse
	if json.Unmarshal(body, &payload) == nil && payload.StatusMessage != "" {
		apiErr.Message = payload.StatusMessage
	}
	return apiErr
}

// TestConnection tests the connection and API key against TMDB
func (c *Client) TestConnection(ctx context.Context) error {
	// The configuration endpoint is cheap and requires a valid key
	if _, err := c.Get(ctx, "/configuration", nil); err != nil {
		return fmt.Errorf("failed to connect to TMDB: %w", err)
	}
	return nil
}

// FetchResults retrieves the result list at source, e.g. "/trending/all/week"
func (c *Client) FetchResults(ctx context.Context, source string) (*ResultsResponse, error) {
	body, err := c.Get(ctx, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
	}

	var response ResultsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug().
		Str("source", source).
		Int("count", len(response.Results)).
		Msg("Retrieved results from TMDB")

	return &response, nil
}

// Videos retrieves the videos attached to a movie or TV show
func (c *Client) Videos(ctx context.Context, mediaType MediaType, id int64) (*VideosResponse, error) {
	return FetchVideos(ctx, c, mediaType, id)
}

// FetchVideos retrieves the videos for an item using any Getter.
func FetchVideos(ctx context.Context, g Getter, mediaType MediaType, id int64) (*VideosResponse, error) {
	if !mediaType.IsVideo() {
		return nil, fmt.Errorf("media type %q has no videos", mediaType)
	}

	body, err := g.Get(ctx, fmt.Sprintf("/%s/%d/videos", mediaType, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}

	var response VideosResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse videos: %w", err)
	}
	return &response, nil
}

// SearchMulti searches movies, TV shows and people by name.
func SearchMulti(ctx context.Context, g Getter, query string) (*ResultsResponse, error) {
	params := url.Values{}
	params.Set("query", query)

	body, err := g.Get(ctx, "/search/multi", params)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", query, err)
	}

	var response ResultsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}
	return &response, nil
}
