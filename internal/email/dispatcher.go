package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peopleops/hr-management/internal/core/events"
)

// Dispatcher enqueues welcome-mail jobs. It returns as soon as the job is
// on the queue; delivery happens out-of-band in the worker.
type Dispatcher struct {
	queue     Queue
	logger    *slog.Logger
	observers []Observer
}

func NewDispatcher(queue Queue, logger *slog.Logger, observers ...Observer) *Dispatcher {
	return &Dispatcher{
		queue:     queue,
		logger:    logger,
		observers: observers,
	}
}

// EnqueueWelcome places a welcome-mail job for the address on the queue and
// returns its id.
func (d *Dispatcher) EnqueueWelcome(ctx context.Context, address string) (string, error) {
	job := NewWelcomeJob(address)
	if err := d.queue.Enqueue(ctx, job); err != nil {
		return "", fmt.Errorf("enqueue welcome mail: %w", err)
	}
	for _, o := range d.observers {
		o.JobEnqueued(job)
	}
	return job.ID, nil
}

// HandleEmployeeCreated is the event-bus subscription entry point. Enqueue
// failures are logged here and go no further: the employee creation that
// triggered the event has already succeeded.
func (d *Dispatcher) HandleEmployeeCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(*events.EmployeeCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	if _, err := d.EnqueueWelcome(ctx, created.Email); err != nil {
		d.logger.Error("failed to enqueue welcome email",
			"employee_id", created.EmployeeID,
			"error", err)
		return err
	}
	return nil
}
