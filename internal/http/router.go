package http

import (
	"net/http"

	"weblog-analytics/internal/analyzers"
	"weblog-analytics/internal/shared/loggers"
	"weblog-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(analysisService analyzers.AnalysisService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	createReportHandler := NewCreateReportHandler(analysisService)
	getReportHandler := NewGetReportHandler(analysisService)

	router.Route("/reports", func(r chi.Router) {
		r.Post("/", errorHandlingAdapter(createReportHandler))
		r.Get("/{"+paramReportID+"}", errorHandlingAdapter(getReportHandler))
	})
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
