// Package metrics exposes scheduling activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeFound    = "found"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// Recorder records scheduling events. A nil *Recorder discards everything so
// handlers can run without metrics enabled.
type Recorder struct {
	candidateSearches *prometheus.CounterVec
	candidateLatency  prometheus.Histogram
	placements        *prometheus.CounterVec
	generatedMatches  prometheus.Counter
	gatherer          prometheus.Gatherer
}

// NewRecorder registers the collectors on reg, reusing any that are already
// registered. A nil reg means the default registry.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "baseliner_candidate_searches_total",
		Help: "Candidate date searches by outcome",
	}, []string{"outcome"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "baseliner_candidate_search_seconds",
		Help:    "Time spent ranking candidate dates for a match",
		Buckets: prometheus.DefBuckets,
	})
	placements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "baseliner_match_placements_total",
		Help: "Match placement attempts by outcome",
	}, []string{"outcome"})
	generated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "baseliner_generated_matches_total",
		Help: "Matches created by round-robin generation",
	})

	var err error
	if searches, err = register(registerer, searches); err != nil {
		return nil, err
	}
	if latency, err = register(registerer, latency); err != nil {
		return nil, err
	}
	if placements, err = register(registerer, placements); err != nil {
		return nil, err
	}
	if generated, err = register(registerer, generated); err != nil {
		return nil, err
	}

	return &Recorder{
		candidateSearches: searches,
		candidateLatency:  latency,
		placements:        placements,
		generatedMatches:  generated,
		gatherer:          gatherer,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (r *Recorder) CandidateSearch(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.candidateSearches.WithLabelValues(outcome).Inc()
	r.candidateLatency.Observe(elapsed.Seconds())
}

func (r *Recorder) Placement(outcome string) {
	if r == nil {
		return
	}
	r.placements.WithLabelValues(outcome).Inc()
}

func (r *Recorder) MatchesGenerated(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.generatedMatches.Add(float64(n))
}

// Handler serves the registry the recorder was built on.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
