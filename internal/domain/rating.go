// Rating and Date value types.
//
// Rating is the climb-quality score a climber assigns on a completed route.
// Date is a calendar date with no time-of-day component, used for completion
// dates. Both types normalize on every construction path (constructor, JSON
// decode, SQL scan) so an out-of-range or malformed value can never be held.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Rating bounds. Inputs outside the range are clamped, never rejected.
const (
	MinRating = 1
	MaxRating = 10
)

// Rating is an integer climb-quality score in [1,10].
type Rating int

// NewRating clamps n into the valid range: values <= 0 become MinRating,
// values >= 11 become MaxRating, in-range values pass through unchanged.
// The clamp is total, so there is no error path.
func NewRating(n int) Rating {
	switch {
	case n < MinRating:
		return MinRating
	case n > MaxRating:
		return MaxRating
	default:
		return Rating(n)
	}
}

// Int returns the score as a plain int.
func (r Rating) Int() int { return int(r) }

// UnmarshalJSON decodes a JSON number and applies the clamp, so client
// payloads with out-of-range scores are normalized rather than rejected.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rating must be an integer: %w", err)
	}
	*r = NewRating(n)
	return nil
}

// Value stores the score as an integer column.
func (r Rating) Value() (driver.Value, error) { return int64(r), nil }

// Scan reads an integer column, clamping for safety against rows written
// outside this application.
func (r *Rating) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*r = NewRating(int(v))
		return nil
	case int:
		*r = NewRating(v)
		return nil
	default:
		return fmt.Errorf("rating: unsupported column type %T", src)
	}
}

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date without time-of-day or timezone. The zero value is
// the zero time, which makes a missing completion_date detectable by the
// binding layer.
type Date time.Time

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("completion date must be YYYY-MM-DD: %w", err)
	}
	return Date(t), nil
}

// String formats the date as "YYYY-MM-DD".
func (d Date) String() string { return time.Time(d).Format(dateLayout) }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return time.Time(d).IsZero() }

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(o Date) bool { return d.String() == o.String() }

// MarshalJSON serializes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON parses a quoted "YYYY-MM-DD" string; anything else is an
// error surfaced by the binding layer as a bad request.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("completion date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as its textual "YYYY-MM-DD" form, which both the
// SQLite and Postgres drivers accept for DATE columns.
func (d Date) Value() (driver.Value, error) { return d.String(), nil }

// Scan reads a DATE column. Drivers differ in what they hand back (time.Time,
// text, bytes), and text forms may carry a time-of-day suffix that is
// deliberately discarded.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("date: unsupported column type %T", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
