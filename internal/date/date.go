// Package date provides a calendar day type with no time-of-day component.
//
// Balance changes are observed per calendar day, so every comparison and
// difference in the performance engine goes through Date instead of time.Time.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the ISO-8601 layout used to read and write dates.
const Format = "2006-01-02"

// readFormat is more permissive and accepts single digit months and days (2022-6-1).
const readFormat = "2006-1-2"

// Day is the duration of one calendar day.
const Day = 24 * time.Hour

// Date is a day with no lower than day granularity.
// The zero Date is "unset".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
// Out of range values are normalized like time.Date does (2022-13-01 is 2023-01-01).
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) Date { return New(t.Date()) }

// Today returns the current date in the local time zone.
func Today() Date { return FromTime(time.Now()) }

// Parse parses a Date. It is lenient and accepts "2022-6-1" as well as "2022-06-01".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return FromTime(on), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// time returns the canonical representation of that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.time() }

func (d Date) Year() int { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int { return d.d }
func (d Date) IsZero() bool { return d == Date{} }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// AddDays returns the date n days after d (before when n is negative).
func (d Date) AddDays(n int) Date { return New(d.y, d.m, d.d+n) }

// AddMonths shifts d by n months. The day is clamped to the last day of the
// target month, so 2023-03-31 minus one month is 2023-02-28.
func (d Date) AddMonths(n int) Date {
	first := New(d.y, d.m+time.Month(n), 1)
	day := d.d
	if last := daysIn(first.y, first.m); day > last {
		day = last
	}
	return Date{first.y, first.m, day}
}

// DaysSince returns the number of calendar days from x to d.
func (d Date) DaysSince(x Date) int { return int(d.time().Sub(x.time()) / Day) }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(Format) }

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// UnmarshalJSON reads a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the date as a json string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
