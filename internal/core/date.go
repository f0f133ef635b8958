package core

import (
	"fmt"
	"time"
)

// DateLayout is the canonical textual form of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date. The time-of-day component is always truncated to
// midnight UTC so that comparisons are date-only.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// PeriodKey returns the sortable "YYYY-MM" key of the date's month, so that
// lexicographic ordering of keys equals chronological ordering of months.
func (d Date) PeriodKey() string {
	return PeriodKeyOf(d.Year(), d.Month())
}

// PeriodKeyOf formats a (year, month) pair as a sortable "YYYY-MM" key.
func PeriodKeyOf(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// CalendarParts are the derived calendar fields attached to every
// normalized record.
type CalendarParts struct {
	Year      int
	Month     int
	Day       int
	PeriodKey string
}

// DeriveCalendar expands a date into its calendar fields.
func DeriveCalendar(d Date) CalendarParts {
	return CalendarParts{
		Year:      d.Year(),
		Month:     d.Month(),
		Day:       d.Day(),
		PeriodKey: d.PeriodKey(),
	}
}
