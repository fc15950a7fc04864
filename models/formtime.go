package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FormTime wraps time.Time so we can control both JSON un/marshaling and
// SQL driver encoding. Department forms submit timestamps in several
// shapes (RFC3339, datetime-local, bare dates), all of which must land
// in a TIMESTAMPTZ column.
type FormTime time.Time

var formTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // HTML datetime-local
	"2006-01-02",       // date-only pickers
}

// ParseFormTime parses any of the accepted form layouts.
func ParseFormTime(s string) (time.Time, bool) {
	for _, layout := range formTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (ft *FormTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, ok := ParseFormTime(s)
	if !ok {
		return fmt.Errorf("FormTime.UnmarshalJSON: cannot parse %q", s)
	}
	*ft = FormTime(t)
	return nil
}

// MarshalJSON always emits full RFC3339.
func (ft FormTime) MarshalJSON() ([]byte, error) {
	t := time.Time(ft)
	return json.Marshal(t.Format(time.RFC3339))
}

// Value implements driver.Valuer so GORM/pgx can turn FormTime into a
// SQL TIMESTAMPTZ parameter.
func (ft FormTime) Value() (driver.Value, error) {
	return time.Time(ft), nil
}

// Scan implements sql.Scanner so GORM can read TIMESTAMPTZ back into
// FormTime when querying.
func (ft *FormTime) Scan(src interface{}) error {
	if src == nil {
		*ft = FormTime(time.Time{})
		return nil
	}
	switch v := src.(type) {
	case time.Time:
		*ft = FormTime(v)
		return nil
	case []byte:
		t, err := time.Parse(time.RFC3339Nano, string(v))
		if err != nil {
			return fmt.Errorf("FormTime.Scan: parse %q: %w", string(v), err)
		}
		*ft = FormTime(t)
		return nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("FormTime.Scan: parse %q: %w", v, err)
		}
		*ft = FormTime(t)
		return nil
	default:
		return fmt.Errorf("FormTime.Scan: unsupported type %T", src)
	}
}

// Time returns the wrapped time.Time.
func (ft FormTime) Time() time.Time {
	return time.Time(ft)
}
