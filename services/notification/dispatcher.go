package notification

import (
	"context"

	"pizzeria/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Runner executes a job synchronously.
type Runner interface {
	Run(ctx context.Context, job Job) error
}

// InlineDispatcher delivers each target in the calling goroutine and swallows failures.
type InlineDispatcher struct {
	runner Runner
	logger *zap.Logger
}

func NewInlineDispatcher(runner Runner, logger *zap.Logger) *InlineDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InlineDispatcher{runner: runner, logger: logger}
}

func (d *InlineDispatcher) Dispatch(ctx context.Context, job Job) {
	for _, part := range job.Split() {
		if err := d.runner.Run(ctx, part); err != nil {
			d.logger.Warn("Notification failed",
				zap.String("kind", string(part.Kind)),
				zap.String("target", string(part.Target)),
				zap.String("booking_id", part.bookingID()),
				zap.Error(err))
		}
	}
}

// Enqueuer is the subset of *asynq.Client the queue dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher enqueues one asynq task per target. When enqueueing fails the target
// is delivered inline instead.
type QueueDispatcher struct {
	client   Enqueuer
	maxRetry int
	fallback *InlineDispatcher
	logger   *zap.Logger
}

func NewQueueDispatcher(client Enqueuer, maxRetry int, fallback *InlineDispatcher, logger *zap.Logger) *QueueDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueueDispatcher{client: client, maxRetry: maxRetry, fallback: fallback, logger: logger}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, job Job) {
	for _, part := range job.Split() {
		task, opts, err := tasks.NewNotificationTask(part, d.maxRetry)
		if err == nil {
			var info *asynq.TaskInfo
			info, err = d.client.EnqueueContext(ctx, task, opts...)
			if err == nil {
				d.logger.Debug("Notification enqueued",
					zap.String("task_id", info.ID),
					zap.String("kind", string(part.Kind)),
					zap.String("target", string(part.Target)))
				continue
			}
		}
		d.logger.Warn("Could not enqueue notification, delivering inline",
			zap.String("kind", string(part.Kind)),
			zap.String("target", string(part.Target)),
			zap.Error(err))
		d.fallback.Dispatch(ctx, part)
	}
}
