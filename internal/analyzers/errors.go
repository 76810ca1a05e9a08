package analyzers

import (
	"fmt"

	"weblog-analytics/internal/shared/svcerrors"
)

// AnalysisService errors
const (
	codeValidationFailed      = "ANL_1000"
	codeEntryOutOfRange       = "ANL_1001"
	codeMalformedEntry        = "ANL_1002"
	codeSourceAlreadyConsumed = "ANL_1003"
	codeReportNotFound        = "ANL_1004"
	codeAnalysisCancelled     = "ANL_1005"

	codeInternalReportStoreFailed    = "ANL_9000"
	codeInternalRawUploadStoreFailed = "ANL_9001"
	codeInternalAggregationFailed    = "ANL_9002"
)

// errValidationFailed returns an error for request validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errEntryOutOfRange returns an error when an uploaded entry lies outside its bucket range.
func errEntryOutOfRange(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeEntryOutOfRange, cause.Error(), cause)
}

// errMalformedEntry returns an error when an uploaded line cannot be parsed.
func errMalformedEntry(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedEntry, cause.Error(), cause)
}

func errSourceAlreadyConsumed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeSourceAlreadyConsumed, "log source already consumed", cause)
}

func errReportNotFound(reportID string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, fmt.Sprintf("report %q not found", reportID), cause)
}

// errAnalysisCancelled returns an error when the caller cancelled the request mid-pass.
func errAnalysisCancelled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewCancelledError(codeAnalysisCancelled, "analysis cancelled", cause)
}

// errInternalReportStoreFailed returns an error when a report store operation fails.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}

// errInternalRawUploadStoreFailed returns an error when a raw upload store operation fails.
func errInternalRawUploadStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRawUploadStoreFailed, fmt.Errorf("rawUploadStoreFailed: %w", cause))
}

func errInternalAggregationFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregationFailed, fmt.Errorf("aggregationFailed: %w", cause))
}
