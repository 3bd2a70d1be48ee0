package jobs

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

// ExportRow is one line of the completed-requests CSV.
type ExportRow struct {
	RequestID      string
	CustomerID     string
	ProfessionalID string // empty when never bound
	RequestDate    time.Time
	Remarks        string
}

var exportHeader = []string{"service_request_id", "customer_id", "professional_id", "date_of_request", "remarks"}

func exportFileName(t time.Time) string {
	return fmt.Sprintf("completed_requests_%s.csv", t.Format("20060102150405"))
}

func writeRequestsCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.RequestID,
			r.CustomerID,
			r.ProfessionalID,
			r.RequestDate.Format("2006-01-02 15:04:05"),
			r.Remarks,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRowFrom(req *models.ServiceRequest) ExportRow {
	row := ExportRow{
		RequestID:   req.ID.String(),
		CustomerID:  req.CustomerID.String(),
		RequestDate: req.RequestDate,
		Remarks:     req.Remarks,
	}
	if req.ProfessionalID != nil {
		row.ProfessionalID = req.ProfessionalID.String()
	}
	return row
}

// NewExportJob snapshots every Completed request into a fresh timestamped
// CSV under dir and returns the file path as the job result. Each run
// writes a new file; nothing is overwritten.
func NewExportJob(db *gorm.DB, dir string) HandlerFunc {
	return func(ctx context.Context, job *models.Job) (interface{}, error) {
		var reqs []models.ServiceRequest
		if err := db.WithContext(ctx).
			Where("status = ?", models.RequestStatusCompleted).
			Order("request_date ASC").
			Find(&reqs).Error; err != nil {
			return nil, err
		}

		rows := make([]ExportRow, 0, len(reqs))
		for i := range reqs {
			rows = append(rows, exportRowFrom(&reqs[i]))
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, exportFileName(time.Now()))
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if err := writeRequestsCSV(f, rows); err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"path": path,
			"rows": len(rows),
		}, nil
	}
}
