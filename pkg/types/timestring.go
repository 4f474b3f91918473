package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" form.
// It is the canonical time-of-day type across the API, domain and storage
// layers: it marshals to JSON as a plain string and maps to a Postgres
// TIME column.
type TimeString string

const timeLayout = "15:04"

var (
	// ErrInvalidTimeString is returned when a value cannot be parsed as "HH:MM"
	ErrInvalidTimeString = errors.New("types: invalid time string format")

	// ErrTimeOutOfRange is returned when time arithmetic leaves the 24-hour day
	ErrTimeOutOfRange = errors.New("types: time out of 24-hour range")
)

// NewTimeString builds a TimeString from the clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses s as "HH:MM".
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(t.Format(timeLayout)), nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// String returns the "HH:MM" representation.
func (ts TimeString) String() string {
	return string(ts)
}

// Minutes returns the number of minutes since midnight.
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsBefore reports whether ts is strictly earlier in the day than other.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later in the day than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// AddMinutes returns ts shifted forward by m minutes.
// Returns ErrTimeOutOfRange if the result leaves the current day.
func (ts TimeString) AddMinutes(m int) (TimeString, error) {
	cur, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(cur + m)
}

// OnDate anchors the time of day to the given calendar date in date's location.
func (ts TimeString) OnDate(date time.Time) (time.Time, error) {
	m, err := ts.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location()), nil
}

// Value implements driver.Valuer so TimeString binds to TIME columns.
func (ts TimeString) Value() (driver.Value, error) {
	if _, err := ts.Minutes(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner. Accepts TIME column values in their
// string, byte and time.Time representations.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := parseDBTime(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case []byte:
		parsed, err := parseDBTime(string(v))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case nil:
		*ts = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

// parseDBTime tolerates the "HH:MM:SS" form Postgres returns for TIME.
func parseDBTime(s string) (TimeString, error) {
	if len(s) >= 5 {
		if parsed, err := NewTimeStringFromString(s[:5]); err == nil {
			return parsed, nil
		}
	}
	return NewTimeStringFromString(s)
}

// MarshalJSON renders the time as a bare "HH:MM" string.
func (ts TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(ts))
}

// UnmarshalJSON parses and validates a bare "HH:MM" string.
func (ts *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
