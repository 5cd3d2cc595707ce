package brain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crapette_brain_search_total",
		Help: "Searches by outcome: path, one of the fallback moves, or cancelled",
	}, []string{"outcome"})

	searchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crapette_brain_search_nodes",
		Help:    "Positions visited per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	searchMoves = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crapette_brain_search_moves",
		Help:    "Moves returned per search",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
	})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crapette_brain_search_duration_seconds",
		Help:    "Search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
)

const (
	outcomePath         = "path"
	outcomeFlipCrape    = "flip_crape"
	outcomeRecycleWaste = "recycle_waste"
	outcomeFlipStock    = "flip_stock"
	outcomeThrowStock   = "throw_stock"
	outcomeCancelled    = "cancelled"
)
