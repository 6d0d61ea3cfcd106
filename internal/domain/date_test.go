package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if d.String() != "2026-03-15" {
		t.Fatalf("String() = %q", d.String())
	}

	for _, bad := range []string{"", "15/03/2026", "2026-13-01", "2026-03-15T10:00:00Z"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	d := DateOf(time.Date(2026, time.March, 15, 23, 59, 59, 0, time.UTC))
	if !d.Equal(NewDate(2026, time.March, 15)) {
		t.Fatalf("DateOf = %v", d)
	}
}

func TestDate_AddDaysAndOrdering(t *testing.T) {
	d := NewDate(2026, time.March, 10)
	end := d.AddDays(30)
	if end.String() != "2026-04-09" {
		t.Fatalf("AddDays(30) = %v", end)
	}
	if !d.Before(end) || !end.After(d) {
		t.Fatalf("ordering broken: %v vs %v", d, end)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(b) != `"2026-03-15"` {
		t.Fatalf("Marshal = %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip = %v, want %v", back, d)
	}
}

func TestDate_ScanForms(t *testing.T) {
	want := NewDate(2026, time.March, 15)

	var fromString Date
	if err := fromString.Scan("2026-03-15"); err != nil || !fromString.Equal(want) {
		t.Fatalf("Scan(string) = %v, %v", fromString, err)
	}

	var fromBytes Date
	if err := fromBytes.Scan([]byte("2026-03-15")); err != nil || !fromBytes.Equal(want) {
		t.Fatalf("Scan([]byte) = %v, %v", fromBytes, err)
	}

	var fromTime Date
	if err := fromTime.Scan(time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)); err != nil || !fromTime.Equal(want) {
		t.Fatalf("Scan(time.Time) = %v, %v", fromTime, err)
	}

	var fromInt Date
	if err := fromInt.Scan(42); err == nil {
		t.Fatalf("Scan(int) expected error")
	}
}
