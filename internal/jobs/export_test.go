package jobs

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

func TestExportFileName(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	got := exportFileName(ts)
	want := "completed_requests_20260314150926.csv"
	if got != want {
		t.Errorf("exportFileName() = %q, want %q", got, want)
	}
}

func TestWriteRequestsCSV(t *testing.T) {
	rows := []ExportRow{
		{
			RequestID:      "req-1",
			CustomerID:     "cust-1",
			ProfessionalID: "pro-1",
			RequestDate:    time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC),
			Remarks:        "leaky faucet",
		},
		{
			RequestID:   "req-2",
			CustomerID:  "cust-2",
			RequestDate: time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := writeRequestsCSV(&buf, rows); err != nil {
		t.Fatalf("writeRequestsCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	header := records[0]
	wantHeader := []string{"service_request_id", "customer_id", "professional_id", "date_of_request", "remarks"}
	for i := range wantHeader {
		if header[i] != wantHeader[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], wantHeader[i])
		}
	}

	if records[1][0] != "req-1" || records[1][2] != "pro-1" || records[1][4] != "leaky faucet" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[1][3] != "2026-01-02 10:30:00" {
		t.Errorf("date formatted as %q", records[1][3])
	}

	// Unbound professional and empty remarks come out as empty cells, not
	// omitted columns.
	if records[2][2] != "" || records[2][4] != "" {
		t.Errorf("unexpected second row: %v", records[2])
	}
}

func TestWriteRequestsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRequestsCSV(&buf, nil); err != nil {
		t.Fatalf("writeRequestsCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want header only", len(records))
	}
}

func TestExportRowFrom(t *testing.T) {
	pro := uuid.New()
	req := models.ServiceRequest{
		ID:             uuid.New(),
		CustomerID:     uuid.New(),
		ProfessionalID: &pro,
		RequestDate:    time.Now(),
		Remarks:        "note",
	}

	row := exportRowFrom(&req)
	if row.RequestID != req.ID.String() {
		t.Errorf("RequestID = %q", row.RequestID)
	}
	if row.ProfessionalID != pro.String() {
		t.Errorf("ProfessionalID = %q", row.ProfessionalID)
	}

	req.ProfessionalID = nil
	row = exportRowFrom(&req)
	if row.ProfessionalID != "" {
		t.Errorf("ProfessionalID = %q, want empty for unbound request", row.ProfessionalID)
	}
}
