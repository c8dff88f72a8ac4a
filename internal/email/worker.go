package email

import (
	"context"
	"log/slog"
	"sync"
)

const defaultConcurrency = 4

// Worker drains the queue and delivers welcome mail. Delivery failures are
// terminal: the job is logged and dropped, there is no retry or dead-letter
// queue.
type Worker struct {
	queue       Queue
	mailer      Mailer
	renderer    *Renderer
	logger      *slog.Logger
	observers   []Observer
	concurrency int
}

func NewWorker(queue Queue, mailer Mailer, renderer *Renderer, logger *slog.Logger, concurrency int, observers ...Observer) *Worker {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Worker{
		queue:       queue,
		mailer:      mailer,
		renderer:    renderer,
		logger:      logger,
		observers:   observers,
		concurrency: concurrency,
	}
}

// Run consumes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.consume(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (w *Worker) consume(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("dequeue failed", "worker_id", id, "error", err)
			continue
		}
		if job == nil {
			continue
		}

		w.process(ctx, *job)
	}
}

func (w *Worker) process(ctx context.Context, job Job) {
	for _, o := range w.observers {
		o.JobStarted(job)
	}

	subject, body, err := w.renderer.RenderWelcome(job.Email)
	if err != nil {
		w.fail(job, err)
		return
	}

	if err := w.mailer.Send(ctx, job.Email, subject, body); err != nil {
		w.fail(job, err)
		return
	}

	for _, o := range w.observers {
		o.JobCompleted(job)
	}
}

func (w *Worker) fail(job Job, err error) {
	w.logger.Error("welcome mail not delivered", "job_id", job.ID, "email", job.Email, "error", err)
	for _, o := range w.observers {
		o.JobFailed(job, err)
	}
}
