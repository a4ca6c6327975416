package utils

import (
	"time"

	"parkportal/internal/constants"
)

// FormatTimestamp renders a backend timestamp for display. Bookings carry
// RFC3339 instants while datetime-local form values omit zone and seconds;
// unparseable input is shown as-is.
func FormatTimestamp(s string) string {
	for _, layout := range []string{time.RFC3339, constants.LocalDateTimeFormat, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(constants.DisplayTimeFormat)
		}
	}
	return s
}
