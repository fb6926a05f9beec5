// Package timex holds time helpers shared by configuration and services.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Duration wraps time.Duration so it can be read from JSON either as a
// Go duration string ("15m", "1h30m") or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// MonthLayout is the "YYYY-MM" layout used for budget months.
const MonthLayout = "2006-01"

// DateLayout is the "YYYY-MM-DD" layout used for transaction dates.
const DateLayout = "2006-01-02"

// CurrentMonth returns now formatted as YYYY-MM in UTC.
func CurrentMonth(now time.Time) string {
	return now.UTC().Format(MonthLayout)
}

// MonthRange returns the half-open interval [start, end) covering the
// given YYYY-MM month.
func MonthRange(month string) (start, end time.Time, err error) {
	start, err = time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}
