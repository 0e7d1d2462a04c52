package utils

import (
	"time"

	"funnel-analytics/schemas"
)

const (
	DATE_ONLY_LAYOUT   = "2006-01-02"
	DEFAULT_RANGE_DAYS = 30
)

var dateLayouts = []string{
	DATE_ONLY_LAYOUT,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
	time.RFC3339,
}

func IsValidDate(dateStr string) bool {
	_, _, ok := parseDate(dateStr)
	return ok
}

func parseDate(dateStr string) (time.Time, bool, bool) {
	if dateStr == "" {
		return time.Time{}, false, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, dateStr); err == nil {
			return parsed.UTC(), layout == DATE_ONLY_LAYOUT, true
		}
	}
	return time.Time{}, false, false
}

// ParseDateRange resolves the from/until query pair. Missing or invalid bounds
// fall back to the last DEFAULT_RANGE_DAYS days ending now. A date-only until
// covers the whole day.
func ParseDateRange(from, until string, now time.Time) schemas.DateRange {
	now = now.UTC()
	end := now
	if parsed, dateOnly, ok := parseDate(until); ok {
		end = parsed
		if dateOnly {
			end = parsed.Add(24*time.Hour - time.Second)
		}
	}

	start := end.AddDate(0, 0, -DEFAULT_RANGE_DAYS)
	if parsed, _, ok := parseDate(from); ok {
		start = parsed
	}

	return schemas.NewDateRange(start, end)
}
