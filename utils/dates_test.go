package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputedBestBefore(t *testing.T) {
	frozen := date(2026, 3, 1)

	explicit := date(2026, 4, 15)
	if got := ComputedBestBefore(frozen, &explicit, 90); !got.Equal(explicit) {
		t.Errorf("explicit date not preferred: got %v", got)
	}

	if got := ComputedBestBefore(frozen, nil, 90); !got.Equal(date(2026, 5, 30)) {
		t.Errorf("derived date = %v, want 2026-05-30", got)
	}
}

func TestExpiringSoon(t *testing.T) {
	now := date(2026, 3, 1)
	cases := []struct {
		name       string
		bestBefore time.Time
		want       bool
	}{
		{"already past", date(2026, 2, 20), true},
		{"today", now, true},
		{"boundary inclusive", date(2026, 3, 8), true},
		{"one day beyond", date(2026, 3, 9), false},
		{"far out", date(2026, 6, 1), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExpiringSoon(c.bestBefore, now, 7); got != c.want {
				t.Errorf("ExpiringSoon(%v) = %v, want %v", c.bestBefore, got, c.want)
			}
		})
	}

	// intra-day timestamps must not affect the date comparison
	lateEvening := time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)
	if !ExpiringSoon(date(2026, 3, 8), lateEvening, 7) {
		t.Error("boundary day rejected when now has a time-of-day component")
	}
}
