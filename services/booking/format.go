package booking

import "time"

// formatDate renders a stored "2006-01-02" date as a human-readable day, e.g.
// "Saturday, January 26, 2025". Unparseable input falls back to the raw string
// so presentation never blocks a state change.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// formatTime renders a stored "HH:mm" time on a 12-hour clock, e.g. "02:30 PM".
// Unparseable input falls back to the raw string.
func formatTime(value string) string {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return value
	}
	return t.Format("03:04 PM")
}
