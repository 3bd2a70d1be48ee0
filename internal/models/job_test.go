package models

import "testing"

func TestJobPollState(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   string
	}{
		{JobStatusQueued, "Pending"},
		{JobStatusRunning, "Pending"},
		{JobStatusSuccess, "Success"},
		{JobStatusFailure, "Failure"},
	}
	for _, tt := range tests {
		j := Job{Status: tt.status}
		if got := j.PollState(); got != tt.want {
			t.Errorf("PollState(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
