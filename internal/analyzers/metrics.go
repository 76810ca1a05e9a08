package analyzers

import (
	"weblog-analytics/internal/shared/metrics"
)

var (
	// metricReportCreatedTotal counts analysis attempts by source format and outcome.
	// error_code is empty for a stored report and the ServiceError code otherwise.
	metricReportCreatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "report_created_total",
		},
		[]string{"source_format", metrics.FieldErrorCode},
	)
)
