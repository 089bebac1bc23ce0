package utils

import "time"

// ComputedBestBefore resolves an item's effective best-before date:
// the explicit date if set, otherwise frozen_at plus the type default.
func ComputedBestBefore(frozenAt time.Time, explicit *time.Time, defaultDays int) time.Time {
	if explicit != nil {
		return *explicit
	}
	return frozenAt.AddDate(0, 0, defaultDays)
}

// ExpiringSoon reports whether bestBefore falls within days of now,
// inclusive. Comparison is date-granular.
func ExpiringSoon(bestBefore, now time.Time, days int) bool {
	threshold := dateOnly(now).AddDate(0, 0, days)
	return !dateOnly(bestBefore).After(threshold)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
