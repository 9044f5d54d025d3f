package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value is a number the backend may report as null or as the string "N/A".
type Value struct {
	Float float64
	Valid bool
}

// Num returns a valid Value.
func Num(f float64) Value { return Value{Float: f, Valid: true} }

// UnmarshalJSON accepts numbers, numeric strings, null and any other string
// (which decodes to an invalid Value).
func (v *Value) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*v = Value{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("decode value: %w", err)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*v = Value{}
			return nil
		}
		*v = Num(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	*v = Num(f)
	return nil
}

// MarshalJSON writes null for an invalid Value.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// TimeRange is the requested chart window.
type TimeRange string

const (
	RangeDay   TimeRange = "day"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeYTD   TimeRange = "ytd"
)

// Ranges lists the time ranges offered by the dashboard, in button order.
var Ranges = []TimeRange{RangeDay, RangeMonth, RangeYear, RangeYTD}

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a backend timestamp. Zone-less layouts are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
