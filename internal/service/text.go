package service

import (
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
)

// ErrInvalidDate is returned for dates that match none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date")

var (
	plainText = bluemonday.StrictPolicy()
	richText  = bluemonday.UGCPolicy()
)

func sanitizePlain(value string) string {
	return strings.TrimSpace(plainText.Sanitize(value))
}

func sanitizeRich(value string) string {
	return strings.TrimSpace(richText.Sanitize(value))
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// parseDate accepts a calendar date or an RFC3339 timestamp and keeps the UTC day.
func parseDate(value string) (datatypes.Date, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return datatypes.Date(time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)), nil
		}
	}
	return datatypes.Date{}, ErrInvalidDate
}

// parseDateTime accepts RFC3339 or the minute-precision form sent by datetime-local inputs.
// Values without an offset are read as UTC.
func parseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func today(now time.Time) datatypes.Date {
	now = now.UTC()
	return datatypes.Date(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
}
