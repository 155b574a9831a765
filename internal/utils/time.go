package utils

import (
	"fmt"
	"time"

	"github.com/kestrelapps/lodestar/internal/constants"
)

// Today returns today's date string (YYYY-MM-DD).
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// DaysUntil returns the number of whole days from today until the given date.
// Negative values mean the date has passed.
func DaysUntil(dateStr string) (int, error) {
	target, err := ParseDate(dateStr)
	if err != nil {
		return 0, fmt.Errorf("invalid date format: %w", err)
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24), nil
}

// FormatDeadline renders a date as a relative deadline phrase.
func FormatDeadline(dateStr string) string {
	days, err := DaysUntil(dateStr)
	if err != nil {
		return dateStr
	}
	switch {
	case days < -1:
		return fmt.Sprintf("overdue by %d days", -days)
	case days == -1:
		return "overdue by 1 day"
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// Truncate shortens a string to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
