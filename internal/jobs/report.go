package jobs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/mail"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/metrics"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

const reportSubject = "Monthly Activity Report"

// monthWindow returns the half-open interval [start, end) covering the
// calendar month before the one now falls in.
func monthWindow(now time.Time) (start, end time.Time) {
	end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start = end.AddDate(0, -1, 0)
	return start, end
}

func renderMonthlyReport(customerName string, reqs []models.ServiceRequest, start, end time.Time) string {
	requested := len(reqs)
	completed := 0
	for i := range reqs {
		if reqs[i].Status == models.RequestStatusCompleted {
			completed++
		}
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h1>Monthly Activity Report</h1>")
	fmt.Fprintf(&b, "<p><strong>Customer Name:</strong> %s</p>", customerName)
	fmt.Fprintf(&b, "<p><strong>Report Period:</strong> %s to %s</p>",
		start.Format("January 02, 2006"), end.AddDate(0, 0, -1).Format("January 02, 2006"))
	b.WriteString("<h2>Service Summary</h2><ul>")
	fmt.Fprintf(&b, "<li>Total Services Requested: %d</li>", requested)
	fmt.Fprintf(&b, "<li>Total Services Completed: %d</li>", completed)
	b.WriteString("</ul><h2>Detailed Activity</h2>")
	b.WriteString(`<table border="1" cellpadding="5" cellspacing="0">`)
	b.WriteString("<tr><th>Service Name</th><th>Status</th><th>Date Requested</th></tr>")
	for i := range reqs {
		req := &reqs[i]
		serviceName := ""
		if req.Service != nil {
			serviceName = req.Service.Name
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
			serviceName, req.Status, req.RequestDate.Format("2006-01-02"))
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

// NewMonthlyReportJob mails each customer a summary of the requests they
// opened in the previous calendar month. Dispatch is sequential, one mail
// per customer; a failed send does not stop the run.
func NewMonthlyReportJob(db *gorm.DB, sender mail.Sender) HandlerFunc {
	return func(ctx context.Context, job *models.Job) (interface{}, error) {
		start, end := monthWindow(time.Now())

		var customers []models.User
		if err := db.WithContext(ctx).
			Where("role = ?", models.RoleCustomer).
			Find(&customers).Error; err != nil {
			return nil, err
		}

		sent := 0
		for i := range customers {
			customer := &customers[i]

			var reqs []models.ServiceRequest
			if err := db.WithContext(ctx).
				Preload("Service").
				Where("customer_id = ?", customer.ID).
				Where("request_date >= ? AND request_date < ?", start, end).
				Order("request_date ASC").
				Find(&reqs).Error; err != nil {
				log.Printf("[ReportJob] failed to load requests for customer %s: %v", customer.ID, err)
				continue
			}

			html := renderMonthlyReport(customer.Name, reqs, start, end)
			if err := sender.Send(customer.Email, reportSubject, html, true); err != nil {
				log.Printf("[ReportJob] failed to send report to %s: %v", customer.Email, err)
				metrics.NotificationsSent.WithLabelValues("monthly_report", "error").Inc()
				continue
			}
			metrics.NotificationsSent.WithLabelValues("monthly_report", "ok").Inc()
			sent++
		}

		return map[string]interface{}{
			"customers":    len(customers),
			"reports_sent": sent,
			"period_start": start.Format("2006-01-02"),
			"period_end":   end.AddDate(0, 0, -1).Format("2006-01-02"),
		}, nil
	}
}
