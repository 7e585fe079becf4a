package affiliate

import (
	"time"

	// The report zone must resolve even on hosts without a tz database.
	_ "time/tzdata"
)

// ReportTimeZone is the civil time zone used for all report day boundaries.
const ReportTimeZone = "America/Sao_Paulo"

var reportLocation = func() *time.Location {
	loc, err := time.LoadLocation(ReportTimeZone)
	if err != nil {
		panic(err)
	}
	return loc
}()

// ReportLocation returns the fixed report time zone.
func ReportLocation() *time.Location {
	return reportLocation
}

// DateRange is an inclusive range of calendar days. Boundaries are computed
// against the report zone's local clock, not a fixed UTC offset, so they stay
// correct across daylight-saving transitions.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two calendar dates. Only the year, month
// and day of the inputs are significant.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: start, End: end}
	s, e := r.Bounds()
	if s > e {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// ParseDateRange parses two YYYY-MM-DD dates into a range.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.ParseInLocation("2006-01-02", start, reportLocation)
	if err != nil {
		return DateRange{}, err
	}
	e, err := time.ParseInLocation("2006-01-02", end, reportLocation)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e)
}

// DefaultDateRange returns the last seven days ending today in the report
// zone.
func DefaultDateRange(now time.Time) DateRange {
	today := now.In(reportLocation)
	return DateRange{Start: today.AddDate(0, 0, -7), End: today}
}

// Bounds returns the Unix timestamps of the first and last instant of the
// range: midnight of the start day and 23:59:59.999999999 of the end day,
// both in the report zone.
func (r DateRange) Bounds() (start, end int64) {
	s := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, reportLocation)
	e := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), reportLocation)
	return s.Unix(), e.Unix()
}

// StartKey returns the start date formatted as YYYY-MM-DD.
func (r DateRange) StartKey() string {
	return r.Start.Format("2006-01-02")
}

// EndKey returns the end date formatted as YYYY-MM-DD.
func (r DateRange) EndKey() string {
	return r.End.Format("2006-01-02")
}
