package web

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer records form submissions.
type Observer interface {
	RecordSubmission(outcome string, chars int)
}

const (
	outcomeCounted = "counted"
	outcomeEmpty   = "empty"
	outcomeNoPairs = "no_pairs"
	outcomeFailed  = "failed"
)

// PrometheusObserver exports submission metrics to Prometheus.
type PrometheusObserver struct {
	submissions *prometheus.CounterVec
	inputChars  prometheus.Histogram
}

// NewPrometheusObserver registers the submission metrics on reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bigrams",
			Name:      "submissions_total",
			Help:      "Form submissions by outcome.",
		}, []string{"outcome"}),
		inputChars: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bigrams",
			Name:      "input_chars",
			Help:      "Characters counted per submission after truncation.",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 7),
		}),
	}
	for _, c := range []prometheus.Collector{o.submissions, o.inputChars} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register web metric: %w", err)
		}
	}
	return o, nil
}

// RecordSubmission implements Observer.
func (o *PrometheusObserver) RecordSubmission(outcome string, chars int) {
	if o == nil {
		return
	}
	o.submissions.WithLabelValues(outcome).Inc()
	if chars > 0 {
		o.inputChars.Observe(float64(chars))
	}
}
