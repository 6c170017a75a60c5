package domain

import (
	"testing"
	"time"
)

func TestDayWindow(t *testing.T) {
	// Mid-afternoon local time.
	ts := time.Date(2024, 3, 10, 15, 30, 0, 0, time.Local).UnixMilli()
	start, end := DayWindow(ts)

	wantStart := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local).UnixMilli()
	if start != wantStart {
		t.Errorf("start: got %d, want %d", start, wantStart)
	}
	if end != wantStart+DayMillis {
		t.Errorf("end: got %d, want %d", end, wantStart+DayMillis)
	}

	// The window is half-open: start is inside, end is not.
	if !(ts >= start && ts < end) {
		t.Error("timestamp should fall inside its own day window")
	}
	if end-1 < start || end >= start+DayMillis+1 {
		t.Error("window must span exactly one day")
	}
}

func TestDayWindow_MidnightBoundary(t *testing.T) {
	midnight := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local).UnixMilli()
	start, _ := DayWindow(midnight)
	if start != midnight {
		t.Errorf("midnight belongs to the day it opens: got %d, want %d", start, midnight)
	}

	startPrev, endPrev := DayWindow(midnight - 1)
	if endPrev != midnight {
		t.Errorf("one ms before midnight belongs to the prior day: end %d, want %d", endPrev, midnight)
	}
	if startPrev != midnight-DayMillis {
		t.Errorf("prior day start: got %d, want %d", startPrev, midnight-DayMillis)
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	ts := time.Date(2024, 7, 1, 9, 0, 0, 0, time.Local).UnixMilli()
	key := DayKey(ts)
	if key != "2024-07-01" {
		t.Errorf("got %s, want 2024-07-01", key)
	}

	start, err := DayStartMillis(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DayKey(start) != key {
		t.Errorf("round trip changed the day: %s vs %s", DayKey(start), key)
	}
}

func TestDayStartMillis_Invalid(t *testing.T) {
	if _, err := DayStartMillis("not-a-date"); err == nil {
		t.Error("expected parse error")
	}
}
