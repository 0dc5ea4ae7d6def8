package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls counts tool invocations by outcome
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Total number of tool calls",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors counts failed calculations by cause
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Number of calculation errors",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls counts calls per transport endpoint
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Tool API calls",
		},
		[]string{"service", "endpoint", "status"},
	)

	// Dispositions counts calculated sales by disposition type
	Dispositions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "espp_dispositions_total",
			Help: "Calculated ESPP sales by disposition type",
		},
		[]string{"type"},
	)

	// CapitalGainTerms counts calculated sales by capital gain term
	CapitalGainTerms = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "espp_capital_gain_term_total",
			Help: "Calculated ESPP sales by capital gain term",
		},
		[]string{"term"},
	)
)

// ObserveDisposition records the classification of one calculated sale
func ObserveDisposition(qualifying bool, term string) {
	dispositionType := "disqualifying"
	if qualifying {
		dispositionType = "qualifying"
	}
	Dispositions.WithLabelValues(dispositionType).Inc()
	CapitalGainTerms.WithLabelValues(term).Inc()
}
