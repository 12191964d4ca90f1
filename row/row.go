// Package row implements a horizontally scrolling row of catalog posters with
// click-to-preview trailers.
//
// A Row retains the result list of the most recently issued fetch for its
// current FetchSource and the currently selected trailer. Fetches and trailer
// lookups run outside the row's lock; each captures a generation number when
// issued and only applies its result if no newer fetch or click happened in
// the meantime.
package row

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/posterrow/tmdb"
	"github.com/s0up4200/posterrow/trailer"
)

// DefaultPosterBaseURL serves original-size TMDB images.
const DefaultPosterBaseURL = "https://image.tmdb.org/t/p/original/"

var (
	// ErrSuperseded is returned when a fetch or trailer lookup completed after
	// a newer one was issued; its result was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")

	// ErrUnknownItem is returned when a click names an item the row does not hold.
	ErrUnknownItem = errors.New("unknown item")
)

// Catalog fetches result lists. *tmdb.Client implements it.
type Catalog interface {
	FetchResults(ctx context.Context, source string) (*tmdb.ResultsResponse, error)
}

// Config describes a row.
type Config struct {
	Title       string
	FetchSource string
	Large       bool
	Filter      string
}

// Option configures a Row.
type Option func(*Row)

// WithPosterBaseURL overrides the prefix poster path fragments are appended to.
func WithPosterBaseURL(base string) Option {
	return func(r *Row) {
		r.posterBase = base
	}
}

// Row holds the view state of a single poster row
type Row struct {
	catalog    Catalog
	trailers   trailer.Resolver
	posterBase string
	logger     zerolog.Logger

	mu         sync.Mutex
	title      string
	source     string
	large      bool
	filter     *Filter
	items      []tmdb.MediaItem
	trailerID  string
	generation uint64
	clicks     uint64
}

// New creates a row. It does not fetch; call Mount.
func New(cfg Config, catalog Catalog, trailers trailer.Resolver, logger zerolog.Logger, opts ...Option) (*Row, error) {
	if catalog == nil {
		return nil, errors.New("row requires a catalog")
	}
	if trailers == nil {
		return nil, errors.New("row requires a trailer resolver")
	}

	filter, err := CompileFilter(cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("row %q: %w", cfg.Title, err)
	}

	r := &Row{
		catalog:    catalog,
		trailers:   trailers,
		posterBase: DefaultPosterBaseURL,
		logger:     logger.With().Str("row", cfg.Title).Logger(),
		title:      cfg.Title,
		source:     cfg.FetchSource,
		large:      cfg.Large,
		filter:     filter,
		items:      []tmdb.MediaItem{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Mount performs the initial fetch for the configured source.
func (r *Row) Mount(ctx context.Context) error {
	return r.fetch(ctx)
}

// Refresh re-fetches the current source.
func (r *Row) Refresh(ctx context.Context) error {
	return r.fetch(ctx)
}

// SetFetchSource switches the row to a new source and fetches it. Setting the
// source it already has does nothing. Trailer lookups still in flight for the
// previous source are discarded when they complete.
func (r *Row) SetFetchSource(ctx context.Context, source string) error {
	r.mu.Lock()
	if source == r.source {
		r.mu.Unlock()
		return nil
	}
	r.source = source
	r.clicks++
	r.mu.Unlock()

	return r.fetch(ctx)
}

// SetTitle changes the display title.
func (r *Row) SetTitle(title string) {
	r.mu.Lock()
	r.title = title
	r.mu.Unlock()
}

// SetLarge switches between the large poster layout and the compact
// backdrop layout.
func (r *Row) SetLarge(large bool) {
	r.mu.Lock()
	r.large = large
	r.mu.Unlock()
}

// FetchSource returns the current source.
func (r *Row) FetchSource() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}

// Items returns a copy of the retained item list.
func (r *Row) Items() []tmdb.MediaItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tmdb.MediaItem(nil), r.items...)
}

// TrailerID returns the selected trailer video id, or "" if none.
func (r *Row) TrailerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trailerID
}

func (r *Row) fetch(ctx context.Context) error {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	source := r.source
	r.mu.Unlock()

	resp, err := r.catalog.FetchResults(ctx, source)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", source, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		r.logger.Debug().
			Str("source", source).
			Uint64("generation", gen).
			Msg("Discarding stale fetch result")
		return ErrSuperseded
	}

	items := resp.Results
	if items == nil {
		items = []tmdb.MediaItem{}
	}
	r.items = items

	r.logger.Debug().
		Str("source", source).
		Int("count", len(items)).
		Msg("Row updated")
	return nil
}

// Click handles a click on the poster of itemID and returns the selected
// trailer id afterwards.
//
// When a trailer is already selected the click only closes it, whichever
// poster was clicked. Otherwise the item's trailer is resolved and selected.
// A failed lookup leaves the selection empty and returns the error. A lookup
// that completes after a newer click or source change returns ErrSuperseded.
func (r *Row) Click(ctx context.Context, itemID int64) (string, error) {
	r.mu.Lock()
	r.clicks++
	seq := r.clicks

	if r.trailerID != "" {
		r.trailerID = ""
		r.mu.Unlock()
		return "", nil
	}

	item, ok := r.findLocked(itemID)
	r.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}

	name := item.DisplayName()
	watchURL, err := r.trailers.Resolve(ctx, name)
	if err != nil {
		return "", fmt.Errorf("resolve trailer for %q: %w", name, err)
	}

	videoID, err := trailer.VideoID(watchURL)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.clicks {
		return r.trailerID, ErrSuperseded
	}
	r.trailerID = videoID
	return videoID, nil
}

func (r *Row) findLocked(id int64) (tmdb.MediaItem, bool) {
	for _, item := range r.items {
		if item.ID == id {
			return item, true
		}
	}
	return tmdb.MediaItem{}, false
}
