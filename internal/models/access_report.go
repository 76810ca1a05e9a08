package models

import "time"

// AccessReport is the snapshot of every statistic answered by one aggregation pass.
// Hours are 0-based; days and months are 1-based, matching how they appear in the log.
//
// Example JSON:
//
//	{
//	  "reportId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "createdAt": "2026-10-17T09:30:00Z",
//	  "sourceFormat": "weblog",
//	  "totalEntries": 8,
//	  "busiestHour": 9,
//	  "busiestHourAccesses": 5,
//	  "quietestHour": 0,
//	  "busiestTwoHourWindow": 8,
//	  "busiestDay": 1,
//	  "busiestDayAccesses": 8,
//	  "quietestDay": 2,
//	  "busiestMonth": 1,
//	  "busiestMonthAccesses": 8,
//	  "quietestMonth": 2,
//	  "averageAccessesPerMonth": 0.6666666666666666,
//	  "hourlyCounts": [0, 0, 0, 0, 0, 0, 0, 0, 0, 5, ...],
//	  "dailyCounts": [8, 0, ...],
//	  "monthlyCounts": [8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0]
//	}
type AccessReport struct {
	ReportID                string    `json:"reportId" yaml:"reportId"`
	CreatedAt               time.Time `json:"createdAt" yaml:"createdAt"`
	SourceFormat            string    `json:"sourceFormat" yaml:"sourceFormat"`
	TotalEntries            int64     `json:"totalEntries" yaml:"totalEntries"`
	BusiestHour             int       `json:"busiestHour" yaml:"busiestHour"`
	BusiestHourAccesses     int64     `json:"busiestHourAccesses" yaml:"busiestHourAccesses"`
	QuietestHour            int       `json:"quietestHour" yaml:"quietestHour"`
	BusiestTwoHourWindow    int       `json:"busiestTwoHourWindow" yaml:"busiestTwoHourWindow"`
	BusiestDay              int       `json:"busiestDay" yaml:"busiestDay"`
	BusiestDayAccesses      int64     `json:"busiestDayAccesses" yaml:"busiestDayAccesses"`
	QuietestDay             int       `json:"quietestDay" yaml:"quietestDay"`
	BusiestMonth            int       `json:"busiestMonth" yaml:"busiestMonth"`
	BusiestMonthAccesses    int64     `json:"busiestMonthAccesses" yaml:"busiestMonthAccesses"`
	QuietestMonth           int       `json:"quietestMonth" yaml:"quietestMonth"`
	AverageAccessesPerMonth float64   `json:"averageAccessesPerMonth" yaml:"averageAccessesPerMonth"`
	HourlyCounts            []int64   `json:"hourlyCounts" yaml:"hourlyCounts,flow"`
	DailyCounts             []int64   `json:"dailyCounts" yaml:"dailyCounts,flow"`
	MonthlyCounts           []int64   `json:"monthlyCounts" yaml:"monthlyCounts,flow"`
}
