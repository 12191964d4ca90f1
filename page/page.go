// Package page composes rows into a browse page.
package page

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/posterrow/row"
)

// DefaultConcurrency bounds how many rows fetch at once.
const DefaultConcurrency = 4

// ErrRowNotFound is returned when no row has the requested slug.
var ErrRowNotFound = errors.New("row not found")

// Entry is a row together with its URL slug.
type Entry struct {
	Slug string
	Row  *row.Row
}

// Page is an ordered set of rows.
type Page struct {
	entries     []Entry
	index       map[string]*row.Row
	concurrency int
	logger      zerolog.Logger
}

// New creates a page from rows in display order. Slugs are derived from
// titles and deduplicated with a numeric suffix.
func New(logger zerolog.Logger, rows ...*row.Row) *Page {
	p := &Page{
		index:       make(map[string]*row.Row, len(rows)),
		concurrency: DefaultConcurrency,
		logger:      logger,
	}
	for i, r := range rows {
		base := Slugify(r.View().Title)
		if base == "" {
			base = fmt.Sprintf("row-%d", i+1)
		}
		slug := base
		for n := 2; p.index[slug] != nil; n++ {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		p.index[slug] = r
		p.entries = append(p.entries, Entry{Slug: slug, Row: r})
	}
	return p
}

// SetConcurrency changes the fetch fan-out used by RefreshAll.
func (p *Page) SetConcurrency(n int) {
	if n > 0 {
		p.concurrency = n
	}
}

// Entries returns the rows in display order.
func (p *Page) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Row returns the row with the given slug.
func (p *Page) Row(slug string) (*row.Row, error) {
	r, ok := p.index[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRowNotFound, slug)
	}
	return r, nil
}

// RefreshAll fetches every row concurrently. A failing row keeps its previous
// items and does not stop the others; the number of failed rows is returned.
func (p *Page) RefreshAll(ctx context.Context) int {
	var g errgroup.Group
	g.SetLimit(p.concurrency)

	failed := make(chan string, len(p.entries))
	for _, e := range p.entries {
		g.Go(func() error {
			if err := e.Row.Refresh(ctx); err != nil && !errors.Is(err, row.ErrSuperseded) {
				p.logger.Warn().
					Err(err).
					Str("row", e.Slug).
					Msg("Failed to fetch row")
				failed <- e.Slug
			}
			return nil
		})
	}

	// Don't stop on individual errors
	_ = g.Wait()
	close(failed)

	return len(failed)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL path segment.
func Slugify(title string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
}
