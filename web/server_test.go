package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/posterrow/page"
	"github.com/s0up4200/posterrow/row"
	"github.com/s0up4200/posterrow/tmdb"
	"github.com/s0up4200/posterrow/trailer"
)

type fakeCatalog struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeCatalog) FetchResults(ctx context.Context, source string) (*tmdb.ResultsResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, source)
	f.mu.Unlock()

	switch source {
	case "/trending/all/week":
		return &tmdb.ResultsResponse{Results: []tmdb.MediaItem{
			{ID: 1, Name: "A", PosterPath: "/a.jpg", BackdropPath: "/a2.jpg"},
			{ID: 2, Name: "B", PosterPath: "/b.jpg", BackdropPath: "/b2.jpg"},
		}}, nil
	case "/movie/top_rated":
		return &tmdb.ResultsResponse{Results: []tmdb.MediaItem{
			{ID: 9, Title: "Z", PosterPath: "/z.jpg", BackdropPath: "/z2.jpg"},
		}}, nil
	}
	return nil, &tmdb.APIError{StatusCode: http.StatusNotFound, Message: "Not Found"}
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

var resolver = trailer.ResolverFunc(func(ctx context.Context, name string) (string, error) {
	if name == "A" {
		return "https://www.youtube.com/watch?v=abc123", nil
	}
	return "", trailer.ErrNotFound
})

type fixture struct {
	handler http.Handler
	catalog *fakeCatalog
	page    *page.Page
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	catalog := &fakeCatalog{}

	r, err := row.New(row.Config{Title: "Trending Now", FetchSource: "/trending/all/week"},
		metrics.Catalog(catalog), metrics.Resolver(resolver), zerolog.Nop())
	require.NoError(t, err)

	p := page.New(zerolog.Nop(), r)
	require.Zero(t, p.RefreshAll(context.Background()))

	return &fixture{
		handler: NewServer(p, zerolog.Nop(), WithMetrics(metrics, reg)),
		catalog: catalog,
		page:    p,
	}
}

func (f *fixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) trailerID(t *testing.T) string {
	t.Helper()
	r, err := f.page.Row("trending-now")
	require.NoError(t, err)
	return r.TrailerID()
}

func TestIndexRendersPosters(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(t, body, "Trending Now")
	assert.Contains(t, body, `data-key="1"`)
	assert.Contains(t, body, `data-key="2"`)
	assert.Contains(t, body, "/a2.jpg")
	assert.NotContains(t, body, "/a.jpg")
	assert.Contains(t, body, `class="row__poster"`)
	assert.NotContains(t, body, "<iframe")
}

func TestClickTogglesTrailer(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodPost, "/rows/trending-now/click/1", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/#trending-now", rr.Header().Get("Location"))
	assert.Equal(t, "abc123", f.trailerID(t))

	body := f.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, "https://www.youtube.com/embed/abc123?autoplay=1")
	assert.Contains(t, body, `height="390px"`)

	// Any poster closes the open trailer.
	rr = f.do(http.MethodPost, "/rows/trending-now/click/2", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Empty(t, f.trailerID(t))
}

func TestClickLookupFailureIsNotSurfaced(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodPost, "/rows/trending-now/click/2", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Empty(t, f.trailerID(t))
}

func TestSupersededClickIsNotLogged(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan string, 2)
	resolver := trailer.ResolverFunc(func(ctx context.Context, name string) (string, error) {
		started <- name
		if name == "A" {
			<-gate
			return "https://www.youtube.com/watch?v=late", nil
		}
		return "https://www.youtube.com/watch?v=def456", nil
	})

	r, err := row.New(row.Config{Title: "Trending Now", FetchSource: "/trending/all/week"},
		&fakeCatalog{}, resolver, zerolog.Nop())
	require.NoError(t, err)
	p := page.New(zerolog.Nop(), r)
	require.Zero(t, p.RefreshAll(context.Background()))

	var buf bytes.Buffer
	f := &fixture{handler: NewServer(p, zerolog.New(&buf)), page: p}

	slow := make(chan int, 1)
	go func() {
		slow <- f.do(http.MethodPost, "/rows/trending-now/click/1", nil).Code
	}()
	require.Equal(t, "A", <-started)

	require.Equal(t, http.StatusSeeOther, f.do(http.MethodPost, "/rows/trending-now/click/2", nil).Code)
	<-started

	close(gate)
	assert.Equal(t, http.StatusSeeOther, <-slow)
	assert.Equal(t, "def456", f.trailerID(t))
	assert.NotContains(t, buf.String(), "Trailer lookup failed")
}

func TestNotFound(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/rows/trending-now/click/404"},
		{http.MethodPost, "/rows/missing/click/1"},
		{http.MethodGet, "/rows/missing"},
		{http.MethodGet, "/api/rows/missing"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, f.do(tt.method, tt.target, nil).Code)
		})
	}
}

func TestSourceChange(t *testing.T) {
	f := newFixture(t)
	require.Len(t, f.catalog.Calls(), 1)

	rr := f.do(http.MethodPost, "/rows/trending-now/source", url.Values{"fetch_url": {"/trending/all/week"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Len(t, f.catalog.Calls(), 1, "same source must not refetch")

	rr = f.do(http.MethodPost, "/rows/trending-now/source", url.Values{"fetch_url": {"/movie/top_rated"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, []string{"/trending/all/week", "/movie/top_rated"}, f.catalog.Calls())

	body := f.do(http.MethodGet, "/rows/trending-now", nil).Body.String()
	assert.Contains(t, body, `data-key="9"`)
	assert.NotContains(t, body, `data-key="1"`)

	// A failing source keeps the previous posters.
	rr = f.do(http.MethodPost, "/rows/trending-now/source", url.Values{"fetch_url": {"/broken"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	body = f.do(http.MethodGet, "/rows/trending-now", nil).Body.String()
	assert.Contains(t, body, `data-key="9"`)

	rr = f.do(http.MethodPost, "/rows/trending-now/source", url.Values{"fetch_url": {""}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLayoutToggle(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodPost, "/rows/trending-now/layout", url.Values{"large": {"true"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	body := f.do(http.MethodGet, "/rows/trending-now", nil).Body.String()
	assert.Contains(t, body, `class="row__poster row__posterLarge"`)
	assert.Contains(t, body, "/a.jpg")
	assert.Len(t, f.catalog.Calls(), 1)

	rr = f.do(http.MethodPost, "/rows/trending-now/layout", url.Values{"large": {"maybe"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodGet, "/api/rows", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var rows []rowData
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "trending-now", rows[0].Slug)
	assert.Equal(t, "/trending/all/week", rows[0].FetchSource)
	require.Len(t, rows[0].Posters, 2)
	assert.Equal(t, int64(1), rows[0].Posters[0].Key)
	assert.Equal(t, row.DefaultPosterBaseURL+"/a2.jpg", rows[0].Posters[0].Src)

	rr = f.do(http.MethodPost, "/api/rows/trending-now/click/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var one rowData
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &one))
	require.NotNil(t, one.Trailer)
	assert.Equal(t, "abc123", one.Trailer.VideoID)
	assert.Equal(t, 1, one.Trailer.Autoplay)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodPost, "/refresh", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Len(t, f.catalog.Calls(), 2)
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	f.do(http.MethodPost, "/rows/trending-now/click/2", nil)

	rr = f.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `posterrow_catalog_fetches_total{result="ok"} 1`)
	assert.Contains(t, body, `posterrow_trailer_lookups_total{result="not_found"} 1`)
	assert.Contains(t, body, "posterrow_http_requests_total")
}

func TestCORS(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/rows", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
