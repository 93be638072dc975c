// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package date provides a calendar day type without time-of-day or zone.

Author life dates and copy due dates are days, not instants. [Date] keeps the
year, month and day only.

Encodings:

  - JSON/Text: "2006-01-02".
  - SQL (Valuer): midnight UTC [time.Time], accepted by both DATE columns
    in Postgres and the text affinity of SQLite.
  - SQL (Scanner): time.Time, "2006-01-02", RFC 3339 or "2006-01-02 15:04:05".
*/
package date

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout is the canonical text form of a [Date].
const Layout = "2006-01-02"

// storedLayouts are the textual forms a driver may hand back for a date column.
var storedLayouts = []string{Layout, time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02 15:04:05Z07:00"}

// Date is a calendar day. The zero value is year 0 and reports IsZero.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// # Constructors

// New returns the normalised date for the given day; out-of-range values
// roll over the way [time.Date] does.
func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Of returns the calendar day of t in t's own location.
func Of(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current day in the local zone.
func Today() Date {
	return Of(time.Now())
}

// Parse reads a "2006-01-02" date.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("date: invalid value %q: %w", value, err)
	}
	return Of(t), nil
}

// MustParse is [Parse] for literals known to be valid.
func MustParse(value string) Date {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}

// # Accessors

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String implements [fmt.Stringer].
func (d Date) String() string {
	return d.Time().Format(Layout)
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// AddDays returns the date n days after d (before, for negative n).
func (d Date) AddDays(n int) Date {
	return Of(d.Time().AddDate(0, 0, n))
}

// # Encoding

// MarshalText implements [encoding.TextMarshaler].
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements [driver.Valuer].
func (d Date) Value() (driver.Value, error) {
	return d.Time(), nil
}

// Scan implements [sql.Scanner].
func (d *Date) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		*d = Of(value)
		return nil
	case string:
		return d.scanText(value)
	case []byte:
		return d.scanText(string(value))
	case nil:
		*d = Date{}
		return nil
	}
	return fmt.Errorf("date: cannot scan %T", src)
}

func (d *Date) scanText(value string) error {
	for _, layout := range storedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			*d = Of(t)
			return nil
		}
	}
	return fmt.Errorf("date: cannot scan %q", value)
}
