package models

// LogEntry is one parsed access-log record. The aggregator reads Hour, Day and Month;
// Year and Minute are carried because the weblog line format includes them.
//
// Example JSON (one line of a JSON-lines upload):
//
//	{"year": 2015, "month": 6, "day": 1, "hour": 14, "minute": 32}
type LogEntry struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func NewLogEntry(year, month, day, hour, minute int) *LogEntry {
	return &LogEntry{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
	}
}
