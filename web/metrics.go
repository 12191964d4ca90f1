package web

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/s0up4200/posterrow/row"
	"github.com/s0up4200/posterrow/tmdb"
	"github.com/s0up4200/posterrow/trailer"
)

// Metrics counts catalog fetches and trailer lookups.
type Metrics struct {
	fetches  *prometheus.CounterVec
	lookups  *prometheus.CounterVec
	requests *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "posterrow",
			Name:      "catalog_fetches_total",
			Help:      "Catalog fetches by result.",
		}, []string{"result"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "posterrow",
			Name:      "trailer_lookups_total",
			Help:      "Trailer lookups by result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "posterrow",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}
	reg.MustRegister(m.fetches, m.lookups, m.requests)
	return m
}

// Catalog wraps c so every fetch is counted.
func (m *Metrics) Catalog(c row.Catalog) row.Catalog {
	return &countingCatalog{next: c, counter: m.fetches}
}

// Resolver wraps r so every lookup is counted.
func (m *Metrics) Resolver(r trailer.Resolver) trailer.Resolver {
	return trailer.ResolverFunc(func(ctx context.Context, name string) (string, error) {
		u, err := r.Resolve(ctx, name)
		switch {
		case err == nil:
			m.lookups.WithLabelValues("ok").Inc()
		case errors.Is(err, trailer.ErrNotFound):
			m.lookups.WithLabelValues("not_found").Inc()
		default:
			m.lookups.WithLabelValues("error").Inc()
		}
		return u, err
	})
}

type countingCatalog struct {
	next    row.Catalog
	counter *prometheus.CounterVec
}

func (c *countingCatalog) FetchResults(ctx context.Context, source string) (*tmdb.ResultsResponse, error) {
	resp, err := c.next.FetchResults(ctx, source)
	if err != nil {
		c.counter.WithLabelValues("error").Inc()
		return nil, err
	}
	c.counter.WithLabelValues("ok").Inc()
	return resp, nil
}
