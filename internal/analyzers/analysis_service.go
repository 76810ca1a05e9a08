package analyzers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"weblog-analytics/internal/aggregators"
	"weblog-analytics/internal/models"
	"weblog-analytics/internal/shared/loggers"
	"weblog-analytics/internal/shared/metrics"
	"weblog-analytics/internal/shared/svcerrors"
	"weblog-analytics/internal/shared/ulid"
	"weblog-analytics/internal/sources"
	"weblog-analytics/internal/stores"
)

// Settings configures how uploads are analyzed.
type Settings struct {
	DayBucketCount int
	MaxUploadBytes int
	DefaultFormat  models.SourceFormat
}

//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// Analyze runs one aggregation pass over an uploaded log file and stores the resulting report.
	// contentType selects the line format; unknown types fall back to the configured default.
	Analyze(ctx context.Context, contentType string, r io.Reader) (*models.AccessReport, error)
	// GetReport loads a previously stored report.
	GetReport(ctx context.Context, reportID string) (*models.AccessReport, error)
}

type analysisService struct {
	reportStore    stores.ReportStore
	rawUploadStore stores.RawUploadStore
	settings       Settings
}

func NewAnalysisService(reportStore stores.ReportStore, rawUploadStore stores.RawUploadStore, settings Settings) AnalysisService {
	return &analysisService{
		reportStore:    reportStore,
		rawUploadStore: rawUploadStore,
		settings:       settings,
	}
}

func (s *analysisService) Analyze(ctx context.Context, contentType string, r io.Reader) (*models.AccessReport, error) {
	format := models.SourceFormatFromContentType(contentType, s.settings.DefaultFormat)

	report, svcErr := s.analyze(ctx, format, r)
	if svcErr != nil {
		metricReportCreatedTotal.WithLabelValues(format.String(), svcErr.Code).Inc()
		return nil, svcErr
	}

	metricReportCreatedTotal.WithLabelValues(format.String(), metrics.ValueNoError).Inc()
	return report, nil
}

func (s *analysisService) analyze(ctx context.Context, format models.SourceFormat, r io.Reader) (*models.AccessReport, *svcerrors.ServiceError) {
	reportID := ulid.NewULID()
	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldReportID, reportID).
		Str(loggers.FieldSourceFormat, format.String()).
		Logger()
	ctx = logger.WithContext(ctx)
	logger.Debug().Msg("started analyzing upload")

	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}
	buf, svcErr := s.readWithLimit(r, s.settings.MaxUploadBytes)
	if svcErr != nil {
		return nil, svcErr
	}

	if err := s.rawUploadStore.Put(ctx, reportID, format, buf); err != nil {
		return nil, errInternalRawUploadStoreFailed(err)
	}

	report, svcErr := s.aggregate(ctx, format, buf)
	if svcErr != nil {
		s.discardRawUpload(ctx, reportID, format)
		return nil, svcErr
	}

	report.ReportID = reportID
	report.CreatedAt = time.Now().UTC()
	report.SourceFormat = format.String()

	if err := s.reportStore.Put(ctx, report); err != nil {
		s.discardRawUpload(ctx, reportID, format)
		return nil, errInternalReportStoreFailed(err)
	}

	logger.Info().Int64(loggers.FieldEntriesCount, report.TotalEntries).Msg("report created")
	return report, nil
}

// aggregate runs a single pass over buf and maps aggregation failures to service errors.
func (s *analysisService) aggregate(ctx context.Context, format models.SourceFormat, buf []byte) (*models.AccessReport, *svcerrors.ServiceError) {
	source, err := sources.NewSource(format, bytes.NewReader(buf))
	if err != nil {
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), err)
	}

	aggregator, err := aggregators.NewAccessAggregator(source, aggregators.WithDayBucketCount(s.settings.DayBucketCount))
	if err != nil {
		return nil, errInternalAggregationFailed(err)
	}

	if err := aggregator.RunAggregationPass(ctx); err != nil {
		switch {
		case errors.Is(err, aggregators.ErrOutOfRange):
			return nil, errEntryOutOfRange(err)
		case errors.Is(err, sources.ErrMalformedEntry):
			return nil, errMalformedEntry(err)
		case errors.Is(err, aggregators.ErrSourceAlreadyConsumed):
			return nil, errSourceAlreadyConsumed(err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, errAnalysisCancelled(err)
		default:
			return nil, errInternalAggregationFailed(err)
		}
	}

	return aggregator.Report(), nil
}

// discardRawUpload removes a raw upload that will never get a report.
// It runs detached from ctx so a cancelled request still cleans up.
func (s *analysisService) discardRawUpload(ctx context.Context, reportID string, format models.SourceFormat) {
	if err := s.rawUploadStore.Delete(context.WithoutCancel(ctx), reportID, format); err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Msg("failed to delete raw upload without report")
	}
}

func (s *analysisService) GetReport(ctx context.Context, reportID string) (*models.AccessReport, error) {
	reportID = strings.TrimSpace(reportID)
	if reportID == "" {
		return nil, errValidationFailed("reportID is required", nil)
	}
	if !ulid.Valid(reportID) {
		return nil, errValidationFailed(fmt.Sprintf("reportID %q is not a ULID", reportID), nil)
	}

	report, err := s.reportStore.Get(ctx, reportID)
	if err != nil {
		if errors.Is(err, stores.ErrReportNotFound) {
			return nil, errReportNotFound(reportID, err)
		}
		return nil, errInternalReportStoreFailed(err)
	}
	return report, nil
}

// readWithLimit reads all of r and fails if it holds more than max bytes.
func (s *analysisService) readWithLimit(r io.Reader, max int) ([]byte, *svcerrors.ServiceError) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max)+1))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > max {
		return nil, errValidationFailed(fmt.Sprintf("upload too large: must be <= %d bytes", max), nil)
	}
	return buf, nil
}
