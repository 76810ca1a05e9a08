package http

import (
	"net/http"

	"weblog-analytics/internal/analyzers"

	"github.com/go-chi/chi/v5"
)

const paramReportID = "reportID"

type getReportHandler struct {
	analysisService analyzers.AnalysisService
}

func NewGetReportHandler(analysisService analyzers.AnalysisService) AppHttpHandler {
	return &getReportHandler{
		analysisService: analysisService,
	}
}

// Handle processes GET /reports/{reportID} requests.
func (h *getReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	report, err := h.analysisService.GetReport(r.Context(), chi.URLParam(r, paramReportID))
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, report)
	return nil
}
