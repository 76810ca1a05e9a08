package aggregators

import (
	"weblog-analytics/internal/shared/metrics"
)

const (
	outcomeOK             = "ok"
	outcomeOutOfRange     = "out_of_range"
	outcomeSourceFailed   = "source_failed"
	outcomeSourceConsumed = "source_already_consumed"
	outcomeCancelled      = "cancelled"
	bucketLabelHour       = "hour"
	bucketLabelDay        = "day"
	bucketLabelMonth      = "month"
)

var (
	// metricAggregationPassTotal counts aggregation passes by outcome.
	metricAggregationPassTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "pass_total",
		},
		[]string{"outcome"},
	)

	// metricEntriesProcessedTotal counts entries committed into each bucket by successful passes.
	// The three series move together; a failed pass commits nothing.
	metricEntriesProcessedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "entries_processed_total",
		},
		[]string{"bucket"},
	)
)
