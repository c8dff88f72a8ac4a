// Package email implements the welcome-mail pipeline: employee-created
// events are turned into jobs on a Redis-backed queue, and a worker drains
// the queue and delivers the rendered message over SMTP. The pipeline is
// fire-and-forget from the caller's perspective: enqueue and delivery
// failures are logged and never surface to the CRUD request that triggered
// them.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const JobTypeWelcome = "sendWelcomeEmail"

// Job is a unit of queued mail work.
type Job struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Email      string    `json:"email"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func NewWelcomeJob(email string) Job {
	return Job{
		ID:         uuid.NewString(),
		Type:       JobTypeWelcome,
		Email:      email,
		EnqueuedAt: time.Now(),
	}
}

// Queue is the transport between dispatcher and worker.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks up to its internal timeout and returns nil when no
	// job arrived.
	Dequeue(ctx context.Context) (*Job, error)
}

// Observer receives job lifecycle callbacks. Observers are not load-bearing:
// the pipeline behaves identically with none attached.
type Observer interface {
	JobEnqueued(job Job)
	JobStarted(job Job)
	JobCompleted(job Job)
	JobFailed(job Job, err error)
}

// LogObserver logs lifecycle events, mirroring what operators expect to see
// from the queue.
type LogObserver struct {
	Logger *slog.Logger
}

func (o *LogObserver) JobEnqueued(job Job) {
	o.Logger.Info("email job enqueued", "job_id", job.ID, "type", job.Type)
}

func (o *LogObserver) JobStarted(job Job) {
	o.Logger.Info("email job active", "job_id", job.ID)
}

func (o *LogObserver) JobCompleted(job Job) {
	o.Logger.Info("email job completed", "job_id", job.ID)
}

func (o *LogObserver) JobFailed(job Job, err error) {
	o.Logger.Error("email job failed", "job_id", job.ID, "error", err)
}
