package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const unknownFamily = "unknown"

var (
	// calculationsTotal counts successful calculations per product family.
	calculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gpcalc_calculations_total",
		Help: "Total number of successful calculations by product family",
	}, []string{"family"})

	// calculationErrorsTotal counts rejected calculations per product family.
	calculationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gpcalc_calculation_errors_total",
		Help: "Total number of rejected calculations by product family",
	}, []string{"family"})

	historyEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gpcalc_history_entries_total",
		Help: "Total number of calculations saved to session history",
	})
)
