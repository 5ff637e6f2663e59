package repository

import "time"

// dateLayout is the storage format for day-granularity fields.
const dateLayout = "2006-01-02"

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// parseDate parses a stored day-granularity field. Stored values are
// written by this package, so a parse failure indicates a corrupt row.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// parseTimestamp parses a stored RFC3339 timestamp field. Nanosecond
// precision is kept so ordering by update time stays exact.
func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
