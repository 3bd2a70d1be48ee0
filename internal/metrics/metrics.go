package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	JobsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "homecare_jobs_processed_total",
		Help: "Background jobs finished, by job name and terminal status.",
	}, []string{"job", "status"})

	NotificationsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "homecare_notifications_sent_total",
		Help: "Notification dispatch attempts, by kind and outcome.",
	}, []string{"kind", "outcome"})
)

func init() {
	prometheus.MustRegister(JobsProcessed, NotificationsSent)
}

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
