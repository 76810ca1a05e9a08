package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldReportID      = "report_id"
	FieldSourceFormat  = "source_format"
	FieldEntriesCount  = "entries_count"
	FieldDayBucketSize = "day_bucket_size"
)
