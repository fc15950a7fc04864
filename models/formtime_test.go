package models

import (
	"testing"
	"time"
)

func TestParseFormTime(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2024-01-16T08:00", true, time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)},
		{"2024-01-16", true, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)},
		{"2024-01-16T08:00:00Z", true, time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)},
		{"garbage", false, time.Time{}},
		{"", false, time.Time{}},
	}
	for _, c := range cases {
		got, ok := ParseFormTime(c.in)
		if ok != c.ok {
			t.Errorf("ParseFormTime(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && !got.Equal(c.want) {
			t.Errorf("ParseFormTime(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormTimeJSONRoundTrip(t *testing.T) {
	var ft FormTime
	if err := ft.UnmarshalJSON([]byte(`"2024-01-16T08:00"`)); err != nil {
		t.Fatal(err)
	}
	if ft.Time().Hour() != 8 {
		t.Errorf("hour = %d", ft.Time().Hour())
	}

	out, err := ft.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"2024-01-16T08:00:00Z"` {
		t.Errorf("marshalled = %s", out)
	}
}
