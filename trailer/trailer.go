// Package trailer resolves display names to YouTube trailer URLs and
// extracts video ids from them.
package trailer

import (
	"context"
	"fmt"
	"net/url"
)

// WatchURLPrefix is the YouTube watch page a resolved trailer points to.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// Resolver looks up a trailer watch URL for a display name.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, name string) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// VideoID returns the "v" query parameter of a watch URL.
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid trailer URL: %w", err)
	}

	id := u.Query().Get("v")
	if id == "" {
		return "", fmt.Errorf("%w: %s", ErrNoVideoID, rawURL)
	}
	return id, nil
}

// WatchURL builds the watch page URL for a video id.
func WatchURL(videoID string) string {
	return WatchURLPrefix + url.QueryEscape(videoID)
}
