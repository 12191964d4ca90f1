// Package web serves poster rows as an HTML page and a small JSON API.
package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/s0up4200/posterrow/page"
	"github.com/s0up4200/posterrow/row"
)

// EmbedURLPrefix is the YouTube player endpoint trailers are embedded from.
const EmbedURLPrefix = "https://www.youtube.com/embed/"

// Option configures the server.
type Option func(*server)

// WithCORSOrigins sets the allowed CORS origins. Defaults to "*".
func WithCORSOrigins(origins ...string) Option {
	return func(s *server) {
		s.corsOrigins = origins
	}
}

// WithMetrics exposes gatherer on /metrics and counts requests in m.
func WithMetrics(m *Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

type server struct {
	page        *page.Page
	tpl         *template.Template
	logger      zerolog.Logger
	corsOrigins []string
	metrics     *Metrics
	gatherer    prometheus.Gatherer
}

// rowData pairs a row's slug with its render snapshot.
type rowData struct {
	Slug string `json:"slug"`
	row.View
}

// NewServer creates an HTTP handler serving the rows of p.
func NewServer(p *page.Page, logger zerolog.Logger, opts ...Option) http.Handler {
	tpl := template.Must(template.New("page").Funcs(template.FuncMap{
		"embedURL": func(videoID string) string {
			return EmbedURLPrefix + url.PathEscape(videoID) + "?autoplay=1"
		},
	}).Parse(pageTpl))

	s := &server{
		page:        p,
		tpl:         tpl,
		logger:      logger,
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.Use(loggingMiddleware(logger, s.metrics))

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", HealthHandler().ServeHTTP).Methods(http.MethodGet)
	r.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/rows/{slug}", s.handleRowFragment).Methods(http.MethodGet)
	r.HandleFunc("/rows/{slug}/click/{id:[0-9]+}", s.handleClick).Methods(http.MethodPost)
	r.HandleFunc("/rows/{slug}/source", s.handleSource).Methods(http.MethodPost)
	r.HandleFunc("/rows/{slug}/layout", s.handleLayout).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rows", s.handleAPIRows).Methods(http.MethodGet)
	api.HandleFunc("/rows/{slug}", s.handleAPIRow).Methods(http.MethodGet)
	api.HandleFunc("/rows/{slug}/click/{id:[0-9]+}", s.handleAPIClick).Methods(http.MethodPost)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// HealthHandler reports liveness.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
}

func (s *server) rows() []rowData {
	entries := s.page.Entries()
	rows := make([]rowData, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, rowData{Slug: e.Slug, View: e.Row.View()})
	}
	return rows
}

func (s *server) lookupRow(w http.ResponseWriter, r *http.Request) (string, *row.Row, bool) {
	slug := mux.Vars(r)["slug"]
	rw, err := s.page.Row(slug)
	if err != nil {
		httpError(w, http.StatusNotFound, "unknown row")
		return "", nil, false
	}
	return slug, rw, true
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, s.rows()); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render page")
	}
}

func (s *server) handleRowFragment(w http.ResponseWriter, r *http.Request) {
	slug, rw, ok := s.lookupRow(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.ExecuteTemplate(w, "row", rowData{Slug: slug, View: rw.View()}); err != nil {
		s.logger.Error().Err(err).Str("row", slug).Msg("Failed to render row")
	}
}

func (s *server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if failed := s.page.RefreshAll(r.Context()); failed > 0 {
		s.logger.Warn().Int("failed", failed).Msg("Some rows could not be refreshed")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// click toggles the trailer of a row. Lookup failures are logged and leave
// the selection empty; only an unknown item is reported back.
func (s *server) click(w http.ResponseWriter, r *http.Request) (string, *row.Row, bool) {
	slug, rw, ok := s.lookupRow(w, r)
	if !ok {
		return "", nil, false
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpError(w, http.StatusNotFound, "unknown item")
		return "", nil, false
	}

	if _, err := rw.Click(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, row.ErrUnknownItem):
			httpError(w, http.StatusNotFound, "unknown item")
			return "", nil, false
		case errors.Is(err, row.ErrSuperseded):
			return slug, rw, true
		}
		s.logger.Warn().
			Err(err).
			Str("row", slug).
			Int64("item", id).
			Msg("Trailer lookup failed")
	}
	return slug, rw, true
}

func (s *server) handleClick(w http.ResponseWriter, r *http.Request) {
	slug, _, ok := s.click(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, "/#"+slug, http.StatusSeeOther)
}

func (s *server) handleSource(w http.ResponseWriter, r *http.Request) {
	slug, rw, ok := s.lookupRow(w, r)
	if !ok {
		return
	}

	source := r.PostFormValue("fetch_url")
	if source == "" {
		httpError(w, http.StatusBadRequest, "fetch_url is required")
		return
	}

	if err := rw.SetFetchSource(r.Context(), source); err != nil && !errors.Is(err, row.ErrSuperseded) {
		s.logger.Warn().
			Err(err).
			Str("row", slug).
			Str("source", source).
			Msg("Failed to fetch row")
	}
	http.Redirect(w, r, "/#"+slug, http.StatusSeeOther)
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	slug, rw, ok := s.lookupRow(w, r)
	if !ok {
		return
	}

	large, err := strconv.ParseBool(r.PostFormValue("large"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "large must be a boolean")
		return
	}

	rw.SetLarge(large)
	http.Redirect(w, r, "/#"+slug, http.StatusSeeOther)
}

func (s *server) handleAPIRows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.rows())
}

func (s *server) handleAPIRow(w http.ResponseWriter, r *http.Request) {
	slug, rw, ok := s.lookupRow(w, r)
	if !ok {
		return
	}
	writeJSON(w, rowData{Slug: slug, View: rw.View()})
}

func (s *server) handleAPIClick(w http.ResponseWriter, r *http.Request) {
	slug, rw, ok := s.click(w, r)
	if !ok {
		return
	}
	writeJSON(w, rowData{Slug: slug, View: rw.View()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
