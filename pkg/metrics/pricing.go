package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records quote and reconciliation activity.
type PricingMetrics struct {
	quotes    prometheus.Counter
	ops       *prometheus.CounterVec
	dispatch  *prometheus.HistogramVec
	mapErrors prometheus.Counter
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	quotes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "volume_quotes_total",
		Help: "Volume discount quotes computed.",
	})
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_operations_total",
		Help: "Reconciliation operations dispatched, by state and outcome.",
	}, []string{"state", "outcome"})
	dispatch := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "price_dispatch_duration_seconds",
		Help:    "Duration of price mutation batch dispatch in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"state"})
	mapErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_field_errors_total",
		Help: "Server-side field validation errors mapped back to form paths.",
	})
	reg.MustRegister(quotes, ops, dispatch, mapErrors)
	return &PricingMetrics{
		quotes:    quotes,
		ops:       ops,
		dispatch:  dispatch,
		mapErrors: mapErrors,
	}
}

// IncQuote counts one computed quote.
func (p *PricingMetrics) IncQuote() {
	if p == nil || p.quotes == nil {
		return
	}
	p.quotes.Inc()
}

// IncOperation counts one dispatched operation outcome.
func (p *PricingMetrics) IncOperation(state, outcome string) {
	if p == nil || p.ops == nil {
		return
	}
	p.ops.WithLabelValues(normalizeLabel(state), normalizeLabel(outcome)).Inc()
}

// ObserveDispatch records how long one batch took to apply.
func (p *PricingMetrics) ObserveDispatch(state string, duration time.Duration) {
	if p == nil || p.dispatch == nil {
		return
	}
	p.dispatch.WithLabelValues(normalizeLabel(state)).Observe(duration.Seconds())
}

// IncFieldError counts one remapped server-side validation error.
func (p *PricingMetrics) IncFieldError() {
	if p == nil || p.mapErrors == nil {
		return
	}
	p.mapErrors.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
