package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/mail"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/metrics"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

const reminderSubject = "Reminder: Complete Your Service Requests"

func reminderBody(proName, serviceName, customerName string, requestDate time.Time) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"You have an in-progress service request for '%s'. "+
			"Please ensure it is completed promptly.\n\n"+
			"Request Details:\n"+
			"- Service: %s\n"+
			"- Customer: %s\n"+
			"- Request Date: %s\n\n"+
			"Thank you for your commitment to excellent service!\n"+
			"Best Regards,\nThe Homecare Team",
		proName, serviceName, serviceName, customerName,
		requestDate.Format("2006-01-02 15:04:05"))
}

// NewReminderJob nudges every professional sitting on an Accepted request.
// A failed send is logged and skipped; the scan always reaches the end.
func NewReminderJob(db *gorm.DB, sender mail.Sender) HandlerFunc {
	return func(ctx context.Context, job *models.Job) (interface{}, error) {
		var reqs []models.ServiceRequest
		if err := db.WithContext(ctx).
			Preload("Professional").
			Preload("Customer").
			Preload("Service").
			Where("status = ?", models.RequestStatusAccepted).
			Find(&reqs).Error; err != nil {
			return nil, err
		}

		sent := 0
		for i := range reqs {
			req := &reqs[i]
			pro := req.Professional
			if pro == nil || pro.Email == "" {
				continue
			}

			serviceName, customerName := "", ""
			if req.Service != nil {
				serviceName = req.Service.Name
			}
			if req.Customer != nil {
				customerName = req.Customer.Name
			}

			body := reminderBody(pro.Name, serviceName, customerName, req.RequestDate)
			if err := sender.Send(pro.Email, reminderSubject, body, false); err != nil {
				log.Printf("[ReminderJob] failed to send reminder to %s for request %s: %v", pro.Email, req.ID, err)
				metrics.NotificationsSent.WithLabelValues("reminder", "error").Inc()
				continue
			}
			metrics.NotificationsSent.WithLabelValues("reminder", "ok").Inc()
			sent++
		}

		return map[string]interface{}{
			"accepted_requests": len(reqs),
			"reminders_sent":    sent,
		}, nil
	}
}
