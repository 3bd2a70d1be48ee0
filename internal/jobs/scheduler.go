package jobs

import (
	"context"
	"log"
	"time"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

// Scheduler enqueues the recurring jobs on wall-clock tickers, the same way
// long-running workers are started elsewhere in the codebase: a goroutine
// per schedule, stopped through ctx.
type Scheduler struct {
	Runner        *Runner
	ReminderEvery time.Duration
}

func NewScheduler(runner *Runner, reminderEvery time.Duration) *Scheduler {
	if reminderEvery <= 0 {
		reminderEvery = 24 * time.Hour
	}
	return &Scheduler{Runner: runner, ReminderEvery: reminderEvery}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.reminderLoop(ctx)
	go s.monthlyReportLoop(ctx)
}

func (s *Scheduler) reminderLoop(ctx context.Context) {
	ticker := time.NewTicker(s.ReminderEvery)
	defer ticker.Stop()
	log.Printf("[Scheduler] reminder job every %s", s.ReminderEvery)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Runner.Enqueue(ctx, models.JobRemind, nil); err != nil {
				log.Printf("[Scheduler] failed to enqueue reminder job: %v", err)
			}
		}
	}
}

// monthlyReportLoop wakes hourly and enqueues the report once on the first
// day of each month. The already-enqueued check reads job rows rather than
// process memory, so a restart on the 1st does not double-send.
func (s *Scheduler) monthlyReportLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			enqueued, err := s.reportJobsThisMonth(ctx, now)
			if err != nil {
				log.Printf("[Scheduler] failed to check for existing report jobs: %v", err)
				continue
			}
			if !reportDue(now, enqueued) {
				continue
			}
			if _, err := s.Runner.Enqueue(ctx, models.JobMonthlyReport, nil); err != nil {
				log.Printf("[Scheduler] failed to enqueue monthly report job: %v", err)
			}
		}
	}
}

// reportDue is the enqueue decision: first of the month, and no report job
// created this month yet.
func reportDue(now time.Time, jobsThisMonth int64) bool {
	return now.Day() == 1 && jobsThisMonth == 0
}

func (s *Scheduler) reportJobsThisMonth(ctx context.Context, now time.Time) (int64, error) {
	// monthWindow's end is the start of the month now falls in.
	_, monthStart := monthWindow(now)
	var count int64
	err := s.Runner.DB.WithContext(ctx).
		Model(&models.Job{}).
		Where("name = ? AND created_at >= ?", models.JobMonthlyReport, monthStart).
		Count(&count).Error
	return count, err
}
