package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the text form of timestamps written by the engine.
// Fixed width in UTC, so that text columns compare in time order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// accepted layouts for timestamps read from replicas
var timestampLayouts = []string{
	time.RFC3339Nano,
	TimestampLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// FormatTimestamp renders t in TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp converts a column value into time.
// Strings without a zone are treated as UTC, numbers as Unix seconds.
func ParseTimestamp(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), nil
	case *time.Time:
		if val == nil {
			return time.Time{}, fmt.Errorf("timestamp is nil")
		}
		return val.UTC(), nil
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", val)
	case []byte:
		return ParseTimestamp(string(val))
	case int64:
		return time.Unix(val, 0).UTC(), nil
	case int:
		return time.Unix(int64(val), 0).UTC(), nil
	case float64:
		sec := int64(val)
		return time.Unix(sec, int64((val-float64(sec))*1e9)).UTC(), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return time.Unix(i, 0).UTC(), nil
		}
		f, err := val.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognized timestamp %q", val)
		}
		return ParseTimestamp(f)
	case nil:
		return time.Time{}, fmt.Errorf("timestamp is nil")
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}
