package model

import (
	"testing"
	"time"
)

func TestTripHasStarted(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dateFrom time.Time
		want     bool
	}{
		{"yesterday", now.Add(-24 * time.Hour), true},
		{"one_second_ago", now.Add(-time.Second), true},
		{"exactly_now", now, false},
		{"tomorrow", now.Add(24 * time.Hour), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			trip := &Trip{DateFrom: test.dateFrom}
			if got := trip.HasStarted(now); got != test.want {
				t.Errorf("HasStarted = %v, want %v", got, test.want)
			}
		})
	}
}
