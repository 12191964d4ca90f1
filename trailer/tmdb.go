package trailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/s0up4200/posterrow/tmdb"
)

// TMDBResolver finds trailers through TMDB search and video listings.
type TMDBResolver struct {
	api     tmdb.Getter
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewTMDBResolver creates a resolver that issues at most rps lookups per
// second with the given burst. A non-positive rps disables limiting.
func NewTMDBResolver(api tmdb.Getter, rps float64, burst int, logger zerolog.Logger) *TMDBResolver {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}

	return &TMDBResolver{
		api:     api,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Resolve returns the YouTube watch URL of the best trailer for name.
func (r *TMDBResolver) Resolve(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("trailer lookup throttled: %w", err)
	}

	results, err := tmdb.SearchMulti(ctx, r.api, name)
	if err != nil {
		return "", err
	}

	match := firstVideoItem(results.Results)
	if match == nil {
		return "", fmt.Errorf("%w: no title matches %q", ErrNotFound, name)
	}

	videos, err := tmdb.FetchVideos(ctx, r.api, match.MediaType, match.ID)
	if err != nil {
		return "", err
	}

	video := pickTrailer(videos.Results)
	if video == nil {
		return "", fmt.Errorf("%w: %q has no YouTube videos", ErrNotFound, name)
	}

	r.logger.Debug().
		Str("name", name).
		Int64("tmdb_id", match.ID).
		Str("video", video.Key).
		Msg("Resolved trailer")

	return WatchURL(video.Key), nil
}

func firstVideoItem(items []tmdb.MediaItem) *tmdb.MediaItem {
	for i := range items {
		if items[i].MediaType.IsVideo() {
			return &items[i]
		}
	}
	return nil
}

// pickTrailer prefers an official trailer, then any trailer, then any
// YouTube video.
func pickTrailer(videos []tmdb.Video) *tmdb.Video {
	var trailer, fallback *tmdb.Video
	for i := range videos {
		v := &videos[i]
		if !v.IsYouTube() {
			continue
		}
		if v.Type == "Trailer" {
			if v.Official {
				return v
			}
			if trailer == nil {
				trailer = v
			}
		}
		if fallback == nil {
			fallback = v
		}
	}
	if trailer != nil {
		return trailer
	}
	return fallback
}
