package services

import (
	"fmt"
	"time"
)

// parseTimestamp accepts RFC3339 or "2006-01-02 15:04" from API clients.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected RFC3339 or YYYY-MM-DD HH:MM", value)
}
