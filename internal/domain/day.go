package domain

import "time"

// DayMillis is the length of a calendar day in epoch milliseconds.
const DayMillis int64 = 24 * 60 * 60 * 1000

// DayWindow returns the [start, end) epoch-ms bounds of the local calendar
// day containing tsMillis. The boundary is local midnight.
func DayWindow(tsMillis int64) (int64, int64) {
	t := time.UnixMilli(tsMillis).In(time.Local)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	return start.UnixMilli(), start.UnixMilli() + DayMillis
}

// DayKey returns the YYYY-MM-DD key of the local day containing tsMillis.
func DayKey(tsMillis int64) string {
	return time.UnixMilli(tsMillis).In(time.Local).Format("2006-01-02")
}

// DayStartMillis parses a YYYY-MM-DD local day and returns its start in
// epoch milliseconds.
func DayStartMillis(localDay string) (int64, error) {
	t, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// LocalDayString formats t as a local YYYY-MM-DD day.
func LocalDayString(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
