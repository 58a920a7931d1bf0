package services

import (
	"time"
)

const dateLayout = "2006-01-02"

// MonthsInRange expands a [dateFrom, dateTo] window into the ascending list
// of YYYY-MM labels it touches, both endpoints' months inclusive. Missing or
// malformed bounds yield an empty list. When dateFrom is after dateTo the
// result is empty unless both truncate to the same month.
func MonthsInRange(dateFrom, dateTo string) []string {
	if dateFrom == "" || dateTo == "" {
		return nil
	}
	start, err := time.Parse(dateLayout, dateFrom)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, dateTo)
	if err != nil {
		return nil
	}

	// Normalize to the first of the month to avoid date boundary issues.
	current := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	endMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []string
	for !current.After(endMonth) {
		months = append(months, current.Format("2006-01"))
		current = current.AddDate(0, 1, 0)
	}
	return months
}

// CurrentMonth returns now's YYYY-MM label.
func CurrentMonth(now time.Time) string {
	return now.Format("2006-01")
}

// PickToggleMonth selects the month a window-scoped payment toggle targets:
// the only month when the window spans one, otherwise today's month when it
// falls inside the window, otherwise the first month. Empty input yields "".
func PickToggleMonth(months []string, today string) string {
	if len(months) == 0 {
		return ""
	}
	if len(months) == 1 {
		return months[0]
	}
	for _, month := range months {
		if month == today {
			return month
		}
	}
	return months[0]
}
