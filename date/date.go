// Package date parses and formats the calendar days used on the command line.
package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Time returns the canonical time of the day, at midnight UTC.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.Time().Before(x.Time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.Time().After(x.Time()) }

// String format the date in its standard format.
func (d Date) String() string { return d.Time().Format(DateFormat) }

// Parse parses a Date relative to today. Besides "2025-7-1" like dates, it
// accepts "today", "yesterday" and day offsets like "-3d".
func Parse(str string) (Date, error) {
	return parse(str, Today())
}

func parse(str string, today Date) (Date, error) {
	s := strings.ToLower(strings.TrimSpace(str))
	switch {
	case s == "" || s == "today":
		return today, nil
	case s == "yesterday":
		return today.Add(-1), nil
	case strings.HasSuffix(s, "d") && (s[0] == '-' || s[0] == '+'):
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return Date{}, fmt.Errorf("invalid day offset %q: %w", str, err)
		}
		return today.Add(n), nil
	}
	on, err := time.Parse(readDateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
