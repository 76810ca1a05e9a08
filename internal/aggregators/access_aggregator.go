package aggregators

import (
	"context"
	"fmt"

	"weblog-analytics/internal/models"
	"weblog-analytics/internal/shared/loggers"
	"weblog-analytics/internal/sources"
)

const (
	HoursPerDay           = 24
	MonthsPerYear         = 12
	DefaultDayBucketCount = 28
	MaxDayBucketCount     = 31

	twoHourWindow = 2
)

// Option configures an AccessAggregator.
type Option func(*AccessAggregator)

// WithDayBucketCount sets the number of day-of-month buckets; valid days become 1..n.
func WithDayBucketCount(n int) Option {
	return func(a *AccessAggregator) {
		a.dayBucketCount = n
	}
}

// AccessAggregator drains an entry source once into hour, day and month count buckets and
// answers every statistic from those buckets. It never re-reads the source to answer a query.
//
// It is not safe for concurrent use: a pass must not run concurrently with queries or with
// another pass.
type AccessAggregator struct {
	source         sources.EntrySource
	dayBucketCount int
	consumed       bool

	hours  *CountBucket
	days   *CountBucket
	months *CountBucket
}

// NewAccessAggregator allocates zero-filled buckets over source. The day bucket count
// defaults to 28 and must be within 1..31.
func NewAccessAggregator(source sources.EntrySource, opts ...Option) (*AccessAggregator, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	a := &AccessAggregator{
		source:         source,
		dayBucketCount: DefaultDayBucketCount,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.dayBucketCount < 1 || a.dayBucketCount > MaxDayBucketCount {
		return nil, fmt.Errorf("%w: day bucket count %d not in [1,%d]", ErrInvalidBucketSize, a.dayBucketCount, MaxDayBucketCount)
	}

	a.hours, a.days, a.months = a.newBuckets()
	return a, nil
}

func (a *AccessAggregator) newBuckets() (hours, days, months *CountBucket) {
	return NewCountBucket(HoursPerDay), NewCountBucket(a.dayBucketCount), NewCountBucket(MonthsPerYear)
}

// RunAggregationPass drains the source and counts every entry into all three buckets.
//
// The pass is atomic: counts are accumulated into fresh buckets that replace the current
// ones only when the whole source was read without error. On failure the previous bucket
// state is kept and the error wraps ErrOutOfRange or ErrSourceFailed.
//
// A source can be drained once. A later pass fails with ErrSourceAlreadyConsumed unless the
// source implements sources.Resetter, in which case it is rewound and recounted from zero.
// A failed pass still consumes the source.
func (a *AccessAggregator) RunAggregationPass(ctx context.Context) error {
	logger := loggers.Ctx(ctx)

	if a.consumed {
		resetter, ok := a.source.(sources.Resetter)
		if !ok {
			metricAggregationPassTotal.WithLabelValues(outcomeSourceConsumed).Inc()
			return ErrSourceAlreadyConsumed
		}
		if err := resetter.Reset(); err != nil {
			metricAggregationPassTotal.WithLabelValues(outcomeSourceConsumed).Inc()
			return fmt.Errorf("%w: %w", ErrSourceAlreadyConsumed, err)
		}
		logger.Debug().Msg("entry source rewound for a new aggregation pass")
	}
	a.consumed = true

	logger.Debug().Int(loggers.FieldDayBucketSize, a.dayBucketCount).Msg("started aggregation pass")

	hours, days, months := a.newBuckets()
	var processed int64
	for a.source.HasNext() {
		if err := ctx.Err(); err != nil {
			metricAggregationPassTotal.WithLabelValues(outcomeCancelled).Inc()
			logger.Warn().Err(err).Int64(loggers.FieldEntriesCount, processed).Msg("aggregation pass cancelled")
			return fmt.Errorf("%w: entry %d: %w", ErrSourceFailed, processed+1, err)
		}

		entry, err := a.source.Next()
		if err == nil && entry == nil {
			err = errNilEntry
		}
		if err != nil {
			metricAggregationPassTotal.WithLabelValues(outcomeSourceFailed).Inc()
			logger.Warn().Err(err).Int64(loggers.FieldEntriesCount, processed).Msg("aggregation pass failed: source error")
			return fmt.Errorf("%w: entry %d: %w", ErrSourceFailed, processed+1, err)
		}

		if err := a.checkRange(entry, hours, days, months); err != nil {
			metricAggregationPassTotal.WithLabelValues(outcomeOutOfRange).Inc()
			logger.Warn().Err(err).Int64(loggers.FieldEntriesCount, processed).Msg("aggregation pass failed: entry out of range")
			return fmt.Errorf("entry %d: %w", processed+1, err)
		}

		hours.Increment(entry.Hour)
		days.Increment(entry.Day - 1)
		months.Increment(entry.Month - 1)
		processed++
	}

	a.hours, a.days, a.months = hours, days, months

	metricAggregationPassTotal.WithLabelValues(outcomeOK).Inc()
	metricEntriesProcessedTotal.WithLabelValues(bucketLabelHour).Add(float64(processed))
	metricEntriesProcessedTotal.WithLabelValues(bucketLabelDay).Add(float64(processed))
	metricEntriesProcessedTotal.WithLabelValues(bucketLabelMonth).Add(float64(processed))
	logger.Debug().Int64(loggers.FieldEntriesCount, processed).Msg("completed aggregation pass")

	return nil
}

// checkRange validates all three fields before any bucket is touched, so an entry is either
// counted in every bucket or in none.
func (a *AccessAggregator) checkRange(entry *models.LogEntry, hours, days, months *CountBucket) error {
	if !hours.InRange(entry.Hour) {
		return fmt.Errorf("%w: hour %d not in [0,%d]", ErrOutOfRange, entry.Hour, HoursPerDay-1)
	}
	if !days.InRange(entry.Day - 1) {
		return fmt.Errorf("%w: day %d not in [1,%d]", ErrOutOfRange, entry.Day, a.dayBucketCount)
	}
	if !months.InRange(entry.Month - 1) {
		return fmt.Errorf("%w: month %d not in [1,%d]", ErrOutOfRange, entry.Month, MonthsPerYear)
	}
	return nil
}

// DayBucketCount is the number of day-of-month buckets.
func (a *AccessAggregator) DayBucketCount() int {
	return a.dayBucketCount
}

// TotalEntriesProcessed is the number of entries counted by the last successful pass.
func (a *AccessAggregator) TotalEntriesProcessed() int64 {
	return a.hours.Total()
}

// ExtremeHour returns the 0-based hour with the most (selectMax) or fewest accesses.
func (a *AccessAggregator) ExtremeHour(selectMax bool) int {
	return a.hours.ExtremeIndex(selectMax)
}

func (a *AccessAggregator) BusiestHour() int {
	return a.ExtremeHour(true)
}

// HourCount returns the accesses counted for the 0-based hour.
func (a *AccessAggregator) HourCount(hour int) int64 {
	return a.hours.Count(hour)
}

func (a *AccessAggregator) QuietestHour() int {
	return a.ExtremeHour(false)
}

// BusiestTwoHourWindow returns the starting hour h in 0..22 maximising the accesses in
// hours h and h+1.
func (a *AccessAggregator) BusiestTwoHourWindow() int {
	return a.hours.BusiestWindow(twoHourWindow)
}

// ExtremeDay returns the 1-based day with the most (selectMax) or fewest accesses.
func (a *AccessAggregator) ExtremeDay(selectMax bool) int {
	return a.days.ExtremeIndex(selectMax) + 1
}

func (a *AccessAggregator) BusiestDay() int {
	return a.ExtremeDay(true)
}

// DayCount returns the accesses counted for the 1-based day.
func (a *AccessAggregator) DayCount(day int) int64 {
	return a.days.Count(day - 1)
}

func (a *AccessAggregator) QuietestDay() int {
	return a.ExtremeDay(false)
}

// ExtremeMonth returns the 1-based month with the most (selectMax) or fewest accesses.
func (a *AccessAggregator) ExtremeMonth(selectMax bool) int {
	return a.months.ExtremeIndex(selectMax) + 1
}

func (a *AccessAggregator) BusiestMonth() int {
	return a.ExtremeMonth(true)
}

// MonthCount returns the accesses counted for the 1-based month.
func (a *AccessAggregator) MonthCount(month int) int64 {
	return a.months.Count(month - 1)
}

func (a *AccessAggregator) QuietestMonth() int {
	return a.ExtremeMonth(false)
}

// MonthlyTotals returns a copy of the per-month counts, January first.
func (a *AccessAggregator) MonthlyTotals() []int64 {
	return a.months.Snapshot()
}

// HourlyCounts returns a copy of the per-hour counts, hour 0 first.
func (a *AccessAggregator) HourlyCounts() []int64 {
	return a.hours.Snapshot()
}

// DailyCounts returns a copy of the per-day counts, day 1 first.
func (a *AccessAggregator) DailyCounts() []int64 {
	return a.days.Snapshot()
}

// AverageAccessesPerMonth divides the total by all 12 months, including months without data.
func (a *AccessAggregator) AverageAccessesPerMonth() float64 {
	return float64(a.months.Total()) / float64(a.months.Len())
}

// Report snapshots every statistic. Identity fields (ID, creation time, format) are left for
// the caller to fill.
func (a *AccessAggregator) Report() *models.AccessReport {
	busiestHour, busiestDay, busiestMonth := a.BusiestHour(), a.BusiestDay(), a.BusiestMonth()
	return &models.AccessReport{
		TotalEntries:            a.TotalEntriesProcessed(),
		BusiestHour:             busiestHour,
		BusiestHourAccesses:     a.HourCount(busiestHour),
		QuietestHour:            a.QuietestHour(),
		BusiestTwoHourWindow:    a.BusiestTwoHourWindow(),
		BusiestDay:              busiestDay,
		BusiestDayAccesses:      a.DayCount(busiestDay),
		QuietestDay:             a.QuietestDay(),
		BusiestMonth:            busiestMonth,
		BusiestMonthAccesses:    a.MonthCount(busiestMonth),
		QuietestMonth:           a.QuietestMonth(),
		AverageAccessesPerMonth: a.AverageAccessesPerMonth(),
		HourlyCounts:            a.HourlyCounts(),
		DailyCounts:             a.DailyCounts(),
		MonthlyCounts:           a.MonthlyTotals(),
	}
}
