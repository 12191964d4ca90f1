package tmdb

import (
	"context"
	"net/url"
)

// API defines the interface for TMDB operations
type API interface {
	// TestConnection verifies the client can reach TMDB with its credentials
	TestConnection(ctx context.Context) error

	// Get issues a GET request to a path relative to the base address
	Get(ctx context.Context, path string, params url.Values) ([]byte, error)

	// FetchResults retrieves a result list collection
	FetchResults(ctx context.Context, source string) (*ResultsResponse, error)
}

// Getter is the subset of API needed to issue raw requests.
type Getter interface {
	Get(ctx context.Context, path string, params url.Values) ([]byte, error)
}

var _ API = (*Client)(nil)
