package analyzers_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"weblog-analytics/internal/analyzers"
	"weblog-analytics/internal/models"
	"weblog-analytics/internal/shared/filestorages"
	"weblog-analytics/internal/shared/svcerrors"
	"weblog-analytics/internal/stores"
	storemocks "weblog-analytics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testReportID = "01ARZ3NDEKTSV4RRFFQ69G5FAV"

func testSettings() analyzers.Settings {
	return analyzers.Settings{
		DayBucketCount: 28,
		MaxUploadBytes: 1024,
		DefaultFormat:  models.FormatWeblog,
	}
}

func requireServiceError(t *testing.T, err error, code, category string) {
	t.Helper()
	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, code, svcErr.Code)
	assert.Equal(t, category, svcErr.Category)
}

func TestAnalyze_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
	service := analyzers.NewAnalysisService(reportStore, rawUploadStore, testSettings())

	body := strings.Repeat("2015 01 01 09 00\n", 5) + strings.Repeat("2015 01 01 14 00\n", 3)

	var uploadedID string
	rawUploadStore.EXPECT().
		Put(gomock.Any(), gomock.Any(), models.FormatWeblog, []byte(body)).
		DoAndReturn(func(ctx context.Context, reportID string, format models.SourceFormat, data []byte) error {
			uploadedID = reportID
			return nil
		})
	reportStore.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, report *models.AccessReport) error {
			assert.Equal(t, uploadedID, report.ReportID)
			return nil
		})

	report, err := service.Analyze(context.Background(), "text/plain", strings.NewReader(body))
	require.NoError(t, err)

	assert.Len(t, report.ReportID, 26, "report ID should be a ULID")
	assert.Equal(t, uploadedID, report.ReportID)
	assert.Equal(t, "weblog", report.SourceFormat)
	assert.WithinDuration(t, time.Now().UTC(), report.CreatedAt, time.Minute)
	assert.Equal(t, int64(8), report.TotalEntries)
	assert.Equal(t, 9, report.BusiestHour)
	assert.Equal(t, 0, report.QuietestHour)
	assert.Equal(t, 1, report.BusiestMonth)
	assert.Len(t, report.DailyCounts, 28)
}

func TestAnalyze_FormatFromContentType(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
	service := analyzers.NewAnalysisService(reportStore, rawUploadStore, testSettings())

	body := `{"year":2015,"month":7,"day":4,"hour":20,"minute":0}` + "\n"

	rawUploadStore.EXPECT().Put(gomock.Any(), gomock.Any(), models.FormatJSONLines, gomock.Any()).Return(nil)
	reportStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	report, err := service.Analyze(context.Background(), "application/x-ndjson", strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "jsonl", report.SourceFormat)
	assert.Equal(t, 20, report.BusiestHour)
	assert.Equal(t, 4, report.BusiestDay)
	assert.Equal(t, 7, report.BusiestMonth)
}

func TestAnalyze_EmptyUploadProducesZeroReport(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
	service := analyzers.NewAnalysisService(reportStore, rawUploadStore, testSettings())

	rawUploadStore.EXPECT().Put(gomock.Any(), gomock.Any(), models.FormatWeblog, gomock.Any()).Return(nil)
	reportStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	report, err := service.Analyze(context.Background(), "", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, int64(0), report.TotalEntries)
	assert.Equal(t, 0, report.BusiestHour)
	assert.Equal(t, 1, report.QuietestDay)
	assert.Equal(t, 0.0, report.AverageAccessesPerMonth)
}

func TestAnalyze_ErrValidationFailed_NilBody(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := analyzers.NewAnalysisService(storemocks.NewMockReportStore(ctrl), storemocks.NewMockRawUploadStore(ctrl), testSettings())

	report, err := service.Analyze(context.Background(), "text/plain", nil)
	requireServiceError(t, err, "ANL_1000", "invalid_argument")
	assert.Nil(t, report, "expected nil report on error")
}

func TestAnalyze_ErrValidationFailed_UploadTooLarge(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := analyzers.NewAnalysisService(storemocks.NewMockReportStore(ctrl), storemocks.NewMockRawUploadStore(ctrl), testSettings())

	body := strings.Repeat("2015 01 01 09 00\n", 100)
	report, err := service.Analyze(context.Background(), "text/plain", strings.NewReader(body))
	requireServiceError(t, err, "ANL_1000", "invalid_argument")
	assert.Contains(t, err.Error(), "upload too large")
	assert.Nil(t, report)
}

func TestAnalyze_RejectedUploads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		contentType  string
		body         string
		wantCode     string
		wantCategory string
	}{
		{
			name:         "hour out of range",
			contentType:  "text/plain",
			body:         "2015 01 01 09 00\n2015 01 01 24 00\n",
			wantCode:     "ANL_1001",
			wantCategory: "invalid_argument",
		},
		{
			name:         "day beyond configured buckets",
			contentType:  "text/plain",
			body:         "2015 01 29 09 00\n",
			wantCode:     "ANL_1001",
			wantCategory: "invalid_argument",
		},
		{
			name:         "malformed weblog line",
			contentType:  "text/plain",
			body:         "2015 01 01 09\n",
			wantCode:     "ANL_1002",
			wantCategory: "invalid_argument",
		},
		{
			name:         "malformed json line",
			contentType:  "application/x-ndjson",
			body:         "{invalid json}\n",
			wantCode:     "ANL_1002",
			wantCategory: "invalid_argument",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reportStore := storemocks.NewMockReportStore(ctrl)
			rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
			service := analyzers.NewAnalysisService(reportStore, rawUploadStore, testSettings())

			var uploadedID string
			rawUploadStore.EXPECT().
				Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, reportID string, format models.SourceFormat, data []byte) error {
					uploadedID = reportID
					return nil
				})
			rawUploadStore.EXPECT().
				Delete(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, reportID string, format models.SourceFormat) error {
					assert.Equal(t, uploadedID, reportID, "the rejected upload should be removed")
					return nil
				})

			report, err := service.Analyze(context.Background(), tt.contentType, strings.NewReader(tt.body))
			requireServiceError(t, err, tt.wantCode, tt.wantCategory)
			assert.Nil(t, report)
		})
	}
}

func TestAnalyze_RejectedUploadDeleteFailureKeepsOriginalError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
	service := analyzers.NewAnalysisService(reportStore, rawUploadStore, testSettings())

	rawUploadStore.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	rawUploadStore.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("permission denied"))

	_, err := service.Analyze(context.Background(), "text/plain", strings.NewReader("2015 13 01 09 00\n"))
	requireServiceError(t, err, "ANL_1001", "invalid_argument")
}

func TestAnalyze_ErrInternalRawUploadStoreFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
	service := analyzers.NewAnalysisService(reportStore, rawUploadStore, testSettings())

	rawUploadStore.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(stores.ErrRawUploadAlreadyExist)

	report, err := service.Analyze(context.Background(), "text/plain", strings.NewReader("2015 01 01 09 00\n"))
	requireServiceError(t, err, "ANL_9001", "internal")
	assert.ErrorIs(t, err, stores.ErrRawUploadAlreadyExist)
	assert.Nil(t, report)
}

func TestAnalyze_ErrInternalReportStoreFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
	service := analyzers.NewAnalysisService(reportStore, rawUploadStore, testSettings())

	var uploadedID string
	rawUploadStore.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, reportID string, format models.SourceFormat, data []byte) error {
			uploadedID = reportID
			return nil
		})
	reportStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	rawUploadStore.EXPECT().
		Delete(gomock.Any(), gomock.Any(), models.FormatWeblog).
		DoAndReturn(func(ctx context.Context, reportID string, format models.SourceFormat) error {
			assert.Equal(t, uploadedID, reportID, "an upload without a stored report should be removed")
			return nil
		})

	report, err := service.Analyze(context.Background(), "text/plain", strings.NewReader("2015 01 01 09 00\n"))
	requireServiceError(t, err, "ANL_9000", "internal")
	assert.Nil(t, report)
}

func TestAnalyze_ErrMalformedEntry_OverlongLine(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
	settings := testSettings()
	settings.MaxUploadBytes = 4 << 20
	service := analyzers.NewAnalysisService(reportStore, rawUploadStore, settings)

	body := "2015 01 01 09 00\n" + strings.Repeat("x", 2<<20)

	var uploadedID string
	rawUploadStore.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, reportID string, format models.SourceFormat, data []byte) error {
			uploadedID = reportID
			return nil
		})
	rawUploadStore.EXPECT().
		Delete(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, reportID string, format models.SourceFormat) error {
			assert.Equal(t, uploadedID, reportID)
			return nil
		})

	report, err := service.Analyze(context.Background(), "text/plain", strings.NewReader(body))
	requireServiceError(t, err, "ANL_1002", "invalid_argument")
	assert.Nil(t, report)
}

func TestAnalyze_ErrAnalysisCancelled(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
	service := analyzers.NewAnalysisService(reportStore, rawUploadStore, testSettings())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rawUploadStore.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	rawUploadStore.EXPECT().
		Delete(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, reportID string, format models.SourceFormat) error {
			assert.NoError(t, ctx.Err(), "cleanup should not inherit the request cancellation")
			return nil
		})

	report, err := service.Analyze(ctx, "text/plain", strings.NewReader("2015 01 01 09 00\n"))
	requireServiceError(t, err, "ANL_1005", "cancelled")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.False(t, svcErr.IsInternalError())
}

func TestAnalyze_ErrInternalAggregationFailed_BadDayBucketCount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	rawUploadStore := storemocks.NewMockRawUploadStore(ctrl)
	settings := testSettings()
	settings.DayBucketCount = 40
	service := analyzers.NewAnalysisService(reportStore, rawUploadStore, settings)

	rawUploadStore.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	rawUploadStore.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := service.Analyze(context.Background(), "text/plain", strings.NewReader("2015 01 01 09 00\n"))
	requireServiceError(t, err, "ANL_9002", "internal")
}

func TestAnalyze_EndToEndWithFileStorage(t *testing.T) {
	t.Parallel()

	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	service := analyzers.NewAnalysisService(stores.NewReportStore(fileStorage), stores.NewRawUploadStore(fileStorage), testSettings())

	ctx := context.Background()
	body := `127.0.0.1 - - [10/Oct/2000:13:55:36 -0700] "GET / HTTP/1.0" 200 2326` + "\n" +
		`127.0.0.1 - - [11/Oct/2000:14:01:00 -0700] "GET /about HTTP/1.0" 200 120` + "\n"

	created, err := service.Analyze(ctx, "text/x-clf", strings.NewReader(body))
	require.NoError(t, err)

	loaded, err := service.GetReport(ctx, created.ReportID)
	require.NoError(t, err)
	assert.Equal(t, created.ReportID, loaded.ReportID)
	assert.Equal(t, "clf", loaded.SourceFormat)
	assert.Equal(t, int64(2), loaded.TotalEntries)
	assert.Equal(t, 13, loaded.BusiestHour)
	assert.Equal(t, 13, loaded.BusiestTwoHourWindow)
	assert.Equal(t, 10, loaded.BusiestDay)
	assert.Equal(t, 10, loaded.BusiestMonth)
	assert.Equal(t, created.MonthlyCounts, loaded.MonthlyCounts)
}

func TestGetReport_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportStore := storemocks.NewMockReportStore(ctrl)
	service := analyzers.NewAnalysisService(reportStore, storemocks.NewMockRawUploadStore(ctrl), testSettings())

	expected := &models.AccessReport{ReportID: testReportID, TotalEntries: 3}
	reportStore.EXPECT().Get(gomock.Any(), testReportID).Return(expected, nil)

	report, err := service.GetReport(context.Background(), " "+testReportID+" ")
	require.NoError(t, err)
	assert.Same(t, expected, report)
}

func TestGetReport_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		storeErr     error
		wantCode     string
		wantCategory string
	}{
		{name: "not found", storeErr: stores.ErrReportNotFound, wantCode: "ANL_1004", wantCategory: "not_found"},
		{name: "storage failure", storeErr: errors.New("io error"), wantCode: "ANL_9000", wantCategory: "internal"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reportStore := storemocks.NewMockReportStore(ctrl)
			service := analyzers.NewAnalysisService(reportStore, storemocks.NewMockRawUploadStore(ctrl), testSettings())

			reportStore.EXPECT().Get(gomock.Any(), testReportID).Return(nil, tt.storeErr)

			report, err := service.GetReport(context.Background(), testReportID)
			requireServiceError(t, err, tt.wantCode, tt.wantCategory)
			assert.Nil(t, report)
		})
	}
}

func TestGetReport_ErrValidationFailed(t *testing.T) {
	t.Parallel()

	for _, reportID := range []string{"  ", "r1", "../reports/x"} {
		ctrl := gomock.NewController(t)
		service := analyzers.NewAnalysisService(storemocks.NewMockReportStore(ctrl), storemocks.NewMockRawUploadStore(ctrl), testSettings())

		_, err := service.GetReport(context.Background(), reportID)
		requireServiceError(t, err, "ANL_1000", "invalid_argument")
		ctrl.Finish()
	}
}
