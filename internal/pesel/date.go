package pesel

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate rejects impossible calendar dates at construction.
var ErrInvalidDate = errors.New("invalid calendar date")

// Date is an immutable proleptic Gregorian calendar day. The zero value
// is not a valid date; construct through NewDate, MustDate or ParseDate.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate validates year/month/day as a real calendar date. Impossible
// days of month are rejected, never clamped.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("%04d-%02d-%02d: %w", year, int(month), day, ErrInvalidDate)
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is NewDate for dates known to be valid; it panics otherwise.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate reads a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse %q: %w", s, ErrInvalidDate)
	}
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// Next returns the following calendar day.
func (d Date) Next() Date { return d.AddDays(1) }

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	t := d.time().AddDate(0, 0, n)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Before reports whether d precedes o.
func (d Date) Before(o Date) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from a through b inclusive.
func daysBetween(a, b Date) int {
	return int(b.time().Sub(a.time()).Hours()/24) + 1
}
