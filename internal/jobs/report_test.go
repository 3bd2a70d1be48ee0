package jobs

import (
	"strings"
	"testing"
	"time"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			"mid month",
			time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"january rolls into previous year",
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"first of march covers all of february",
			time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC),
			time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := monthWindow(tt.now)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestRenderMonthlyReport(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	reqs := []models.ServiceRequest{
		{
			Status:      models.RequestStatusCompleted,
			RequestDate: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
			Service:     &models.Service{Name: "Pipe Repair"},
		},
		{
			Status:      models.RequestStatusPending,
			RequestDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			Service:     &models.Service{Name: "Deep Cleaning"},
		},
		{
			Status:      models.RequestStatusCancelled,
			RequestDate: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	html := renderMonthlyReport("Alice", reqs, start, end)

	for _, want := range []string{
		"Alice",
		"Total Services Requested: 3",
		"Total Services Completed: 1",
		"Pipe Repair",
		"Deep Cleaning",
		"February 01, 2026",
		"February 28, 2026",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderMonthlyReportEmpty(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	html := renderMonthlyReport("Bob", nil, start, end)
	if !strings.Contains(html, "Total Services Requested: 0") {
		t.Error("empty report should still state zero requests")
	}
	if !strings.Contains(html, "Total Services Completed: 0") {
		t.Error("empty report should still state zero completions")
	}
}

func TestReminderBody(t *testing.T) {
	body := reminderBody("Pat", "Pipe Repair", "Alice", time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC))
	for _, want := range []string{"Pat", "Pipe Repair", "Alice", "2026-02-03 09:30:00"} {
		if !strings.Contains(body, want) {
			t.Errorf("reminder body missing %q", want)
		}
	}
}
