package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobStatusQueued  JobStatus = "queued"
	JobStatusRunning JobStatus = "running"
	JobStatusSuccess JobStatus = "success"
	JobStatusFailure JobStatus = "failure"
)

const (
	JobExportRequests = "export_completed_requests"
	JobRemind         = "remind_professionals"
	JobMonthlyReport  = "monthly_activity_report"
)

// Job is one unit of deferred work. The row is the source of truth for
// pollers; the Redis list only carries the job ID to a worker.
type Job struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(60);not null;index" json:"name"`

	Args   datatypes.JSON `json:"args,omitempty"`
	Status JobStatus      `gorm:"type:varchar(20);not null;default:'queued';index" json:"status"`
	Result datatypes.JSON `json:"result,omitempty"`
	Error  string         `gorm:"type:text" json:"error,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// PollState collapses the internal lifecycle to what a polling caller can
// distinguish: queued and running both read as Pending.
func (j *Job) PollState() string {
	switch j.Status {
	case JobStatusSuccess:
		return "Success"
	case JobStatusFailure:
		return "Failure"
	default:
		return "Pending"
	}
}
