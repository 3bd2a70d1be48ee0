package handlers

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/jobs"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

// JobHandler is the HTTP face of the async runner: trigger endpoints hand
// back a job ID immediately, the poll endpoint reads the job row.
type JobHandler struct {
	Runner *jobs.Runner
}

func NewJobHandler(runner *jobs.Runner) *JobHandler {
	return &JobHandler{Runner: runner}
}

// TriggerExport enqueues a completed-requests CSV export and returns 202
// with the job ID for polling.
func (h *JobHandler) TriggerExport(c *fiber.Ctx) error {
	return h.trigger(c, models.JobExportRequests, "Export started")
}

// TriggerReminder runs the pending-work reminder sweep outside the daily
// schedule.
func (h *JobHandler) TriggerReminder(c *fiber.Ctx) error {
	return h.trigger(c, models.JobRemind, "Reminder dispatch started")
}

// TriggerMonthlyReport runs the monthly activity report outside the
// first-of-month schedule.
func (h *JobHandler) TriggerMonthlyReport(c *fiber.Ctx) error {
	return h.trigger(c, models.JobMonthlyReport, "Monthly report dispatch started")
}

func (h *JobHandler) trigger(c *fiber.Ctx, name, okMsg string) error {
	jobID, err := h.Runner.Enqueue(c.Context(), name, nil)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to enqueue job")
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": okMsg,
		"data": fiber.Map{
			"job_id": jobID,
			"status": "Pending",
		},
	})
}

// Poll reports the job state. Repeated polls on an unfinished job keep
// answering Pending; terminal states carry the result or the error.
func (h *JobHandler) Poll(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	job, err := h.Runner.Get(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			return fail(c, fiber.StatusNotFound, "Job not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch job")
	}

	data := fiber.Map{
		"job_id": job.ID,
		"name":   job.Name,
		"status": job.PollState(),
	}
	if job.Status == models.JobStatusSuccess && len(job.Result) > 0 {
		var result map[string]interface{}
		if json.Unmarshal(job.Result, &result) == nil {
			data["result"] = result
		}
	}
	if job.Status == models.JobStatusFailure {
		data["error"] = job.Error
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// DownloadExport streams the CSV produced by a finished export job.
func (h *JobHandler) DownloadExport(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	job, err := h.Runner.Get(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			return fail(c, fiber.StatusNotFound, "Job not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch job")
	}
	if job.Name != models.JobExportRequests {
		return fail(c, fiber.StatusBadRequest, "Job is not an export")
	}
	if job.Status != models.JobStatusSuccess {
		return fail(c, fiber.StatusBadRequest, "Export is not finished")
	}

	var result struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(job.Result, &result); err != nil || result.Path == "" {
		return fail(c, fiber.StatusInternalServerError, "Export result is missing its file path")
	}
	if _, err := os.Stat(result.Path); err != nil {
		return fail(c, fiber.StatusNotFound, "Export file no longer exists")
	}

	return c.Download(result.Path)
}
