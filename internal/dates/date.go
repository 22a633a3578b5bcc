// Package dates provides a calendar date value that carries no time of day and no
// time zone. Every cycle computation keys off these values, so a date parsed from
// "2024-03-10" is always March 10th no matter where the process runs.
package dates

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned for anything that is not a real YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("dates: invalid ISO date")

const isoLayout = "2006-01-02"

// Date is a plain year/month/day triple. The zero value means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New builds a Date, normalizing overflowing components the way time.Date does.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar date of t as observed in t's own location.
func FromTime(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current calendar date in location. A nil location means UTC.
func Today(location *time.Location) Date {
	if location == nil {
		location = time.UTC
	}
	return FromTime(time.Now().In(location))
}

// Parse reads a strict YYYY-MM-DD string.
func Parse(raw string) (Date, error) {
	if len(raw) != len(isoLayout) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	parsed, err := time.ParseInLocation(isoLayout, raw, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return FromTime(parsed), nil
}

// ParseMonth reads a strict YYYY-MM string and returns the first day of that month.
func ParseMonth(raw string) (Date, error) {
	if len(raw) != len("2006-01") {
		return Date{}, fmt.Errorf("%w: month %q", ErrInvalidDate, raw)
	}
	return Parse(raw + "-01")
}

// MustParse is Parse for literals known to be valid.
func MustParse(raw string) Date {
	day, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return day
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthString formats the date as YYYY-MM.
func (d Date) MonthString() string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight of the date in location (UTC when nil).
func (d Date) Time(location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, location)
}

func (d Date) AddDays(days int) Date {
	return New(d.Year, d.Month, d.Day+days)
}

func (d Date) AddMonths(months int) Date {
	return New(d.Year, d.Month+time.Month(months), d.Day)
}

func (d Date) StartOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return compareInts(d.Year, other.Year)
	case d.Month != other.Month:
		return compareInts(int(d.Month), int(other.Month))
	default:
		return compareInts(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d.Compare(other) == 0 }

const secondsPerDay = 24 * 60 * 60

// DiffDays returns b - a in whole days. It works on Unix seconds of UTC midnights,
// which stay exact across the full 0000-9999 range.
func DiffDays(a Date, b Date) int {
	return int((b.Time(time.UTC).Unix() - a.Time(time.UTC).Unix()) / secondsPerDay)
}

// DaysInMonth follows Gregorian leap-year rules.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as ISO text so SQLite comparisons stay lexicographic.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(value any) error {
	switch typed := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		return d.scanString(typed)
	case []byte:
		return d.scanString(string(typed))
	case time.Time:
		*d = FromTime(typed)
		return nil
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrInvalidDate, value)
	}
}

// scanString accepts a bare date or a date followed by a "T" or space separated
// time of day. Anything else is corrupt.
func (d *Date) scanString(raw string) error {
	if len(raw) > len(isoLayout) {
		if separator := raw[len(isoLayout)]; separator != 'T' && separator != ' ' {
			return fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
		raw = raw[:len(isoLayout)]
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func compareInts(a int, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
