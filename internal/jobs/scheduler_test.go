package jobs

import (
	"testing"
	"time"
)

func TestReportDue(t *testing.T) {
	first := time.Date(2026, 4, 1, 3, 0, 0, 0, time.UTC)
	second := time.Date(2026, 4, 2, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		now           time.Time
		jobsThisMonth int64
		want          bool
	}{
		{"first of month, nothing enqueued", first, 0, true},
		{"first of month, already enqueued", first, 1, false},
		{"first of month, enqueued before a restart", first, 3, false},
		{"not the first", second, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reportDue(tt.now, tt.jobsThisMonth); got != tt.want {
				t.Errorf("reportDue(%v, %d) = %v, want %v", tt.now, tt.jobsThisMonth, got, tt.want)
			}
		})
	}
}
