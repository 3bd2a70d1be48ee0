// Package jobs is the async side of the marketplace: a Redis-backed queue,
// a worker pool, and the job implementations (reminders, monthly reports,
// CSV export). Callers never block on a job; Enqueue hands back an ID and
// the result is polled through Get.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/metrics"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

const queueKey = "jobs:queue"

var ErrJobNotFound = errors.New("job not found")

// HandlerFunc runs one job and returns its result payload.
type HandlerFunc func(ctx context.Context, job *models.Job) (interface{}, error)

type Runner struct {
	DB  *gorm.DB
	RDB *redis.Client

	handlers map[string]HandlerFunc
}

func NewRunner(db *gorm.DB, rdb *redis.Client) *Runner {
	return &Runner{DB: db, RDB: rdb, handlers: map[string]HandlerFunc{}}
}

func (r *Runner) Register(name string, fn HandlerFunc) {
	r.handlers[name] = fn
}

// Enqueue persists the job row and pushes its ID onto the queue. The row is
// what pollers read; the list entry is only a ticket for a worker.
func (r *Runner) Enqueue(ctx context.Context, name string, args interface{}) (uuid.UUID, error) {
	var argsJSON datatypes.JSON
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return uuid.Nil, err
		}
		argsJSON = datatypes.JSON(b)
	}

	job := models.Job{
		ID:     uuid.New(),
		Name:   name,
		Args:   argsJSON,
		Status: models.JobStatusQueued,
	}
	if err := r.DB.WithContext(ctx).Create(&job).Error; err != nil {
		return uuid.Nil, err
	}

	if err := r.RDB.LPush(ctx, queueKey, job.ID.String()).Err(); err != nil {
		// The row exists but no worker will ever see it; surface the
		// failure instead of leaving a job stuck in queued.
		r.finish(job.ID, models.JobStatusQueued, models.JobStatusFailure, nil, "enqueue: "+err.Error())
		return uuid.Nil, err
	}
	return job.ID, nil
}

// Get loads the job row for polling callers.
func (r *Runner) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.DB.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Start launches n workers that drain the queue until ctx is cancelled.
func (r *Runner) Start(ctx context.Context, n int) {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		go r.worker(ctx, i)
	}
	log.Printf("[JobRunner] started %d workers", n)
}

func (r *Runner) worker(ctx context.Context, id int) {
	for {
		res, err := r.RDB.BRPop(ctx, 5*time.Second, queueKey).Result()
		if ctx.Err() != nil {
			log.Printf("[JobRunner] worker %d stopping", id)
			return
		}
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("[JobRunner] worker %d: queue read error: %v", id, err)
				time.Sleep(time.Second)
			}
			continue
		}
		// BRPop returns [key, value].
		if len(res) != 2 {
			continue
		}
		r.run(ctx, res[1])
	}
}

func (r *Runner) run(ctx context.Context, rawID string) {
	jobID, err := uuid.Parse(rawID)
	if err != nil {
		log.Printf("[JobRunner] dropping malformed job id %q", rawID)
		return
	}

	var job models.Job
	if err := r.DB.First(&job, "id = ?", jobID).Error; err != nil {
		log.Printf("[JobRunner] job %s: row not found, skipping", jobID)
		return
	}

	// Claim the row; a duplicate list entry loses here and moves on.
	res := r.DB.Model(&models.Job{}).
		Where("id = ? AND status = ?", jobID, models.JobStatusQueued).
		Update("status", models.JobStatusRunning)
	if res.Error != nil || res.RowsAffected == 0 {
		return
	}
	job.Status = models.JobStatusRunning

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[JobRunner] job %s (%s) panicked: %v", job.ID, job.Name, rec)
			r.finish(job.ID, models.JobStatusRunning, models.JobStatusFailure, nil, fmt.Sprintf("panic: %v", rec))
			metrics.JobsProcessed.WithLabelValues(job.Name, string(models.JobStatusFailure)).Inc()
		}
	}()

	fn, ok := r.handlers[job.Name]
	if !ok {
		r.finish(job.ID, models.JobStatusRunning, models.JobStatusFailure, nil, "no handler registered for "+job.Name)
		metrics.JobsProcessed.WithLabelValues(job.Name, string(models.JobStatusFailure)).Inc()
		return
	}

	log.Printf("[JobRunner] job %s (%s) started", job.ID, job.Name)
	result, err := fn(ctx, &job)
	if err != nil {
		log.Printf("[JobRunner] job %s (%s) failed: %v", job.ID, job.Name, err)
		r.finish(job.ID, models.JobStatusRunning, models.JobStatusFailure, nil, err.Error())
		metrics.JobsProcessed.WithLabelValues(job.Name, string(models.JobStatusFailure)).Inc()
		return
	}

	var resultJSON datatypes.JSON
	if result != nil {
		if b, merr := json.Marshal(result); merr == nil {
			resultJSON = datatypes.JSON(b)
		}
	}
	r.finish(job.ID, models.JobStatusRunning, models.JobStatusSuccess, resultJSON, "")
	metrics.JobsProcessed.WithLabelValues(job.Name, string(models.JobStatusSuccess)).Inc()
	log.Printf("[JobRunner] job %s (%s) finished", job.ID, job.Name)
}

// finish writes the terminal state with a conditional update so a stale
// worker cannot overwrite a result that already landed.
func (r *Runner) finish(id uuid.UUID, from, to models.JobStatus, result datatypes.JSON, errMsg string) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":      to,
		"error":       errMsg,
		"finished_at": &now,
	}
	if result != nil {
		updates["result"] = result
	}
	if err := r.DB.Model(&models.Job{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates).Error; err != nil {
		log.Printf("[JobRunner] job %s: failed to record terminal status: %v", id, err)
	}
}
