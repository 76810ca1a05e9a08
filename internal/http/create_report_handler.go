package http

import (
	"io"
	"net/http"

	"weblog-analytics/internal/analyzers"
	"weblog-analytics/internal/shared/metrics"
	"weblog-analytics/internal/shared/svcerrors"
)

type createReportHandler struct {
	analysisService analyzers.AnalysisService
}

func NewCreateReportHandler(analysisService analyzers.AnalysisService) AppHttpHandler {
	return &createReportHandler{
		analysisService: analysisService,
	}
}

// Handle processes POST /reports requests.
// The body is a log file; its content type selects the line format.
func (h *createReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body := &countingReader{r: r.Body}
	report, err := h.analysisService.Analyze(r.Context(), contentType(r), body)

	errorCode := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		errorCode = svcErr.Code
	}
	metricUploadBytes.WithLabelValues(errorCode).Observe(float64(body.n))

	if err != nil {
		return err
	}

	w.Header().Set(headerLocation, "/reports/"+report.ReportID)
	writeJSON(w, http.StatusCreated, report)
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
