package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"pizzeria/services/notification"
	"pizzeria/services/tasks"
	"pizzeria/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderSender sends tomorrow's booking reminders.
type ReminderSender interface {
	SendDailyReminders(ctx context.Context) (sent, total int, err error)
}

// Worker consumes notification tasks and schedules the daily reminder run.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	cronSpec  string
	logger    *zap.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, runner notification.Runner, reminders ReminderSender, cronSpec string, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			tasks.QueueNotifications: 6,
			tasks.QueueScheduled:     3,
			"default":                1,
		},
		Logger: logger.Sugar(),
	})
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: utils.BusinessLocation,
		Logger:   logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationDeliver, handleNotificationTask(runner, logger))
	mux.HandleFunc(tasks.TypeDailyReminders, handleDailyReminders(reminders, logger))

	return &Worker{server: srv, scheduler: scheduler, mux: mux, cronSpec: cronSpec, logger: logger}
}

// Start runs the task server and registers the reminder schedule. Both run in the background.
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start task server: %w", err)
	}
	if w.cronSpec != "" {
		task, opts := tasks.NewDailyRemindersTask()
		id, err := w.scheduler.Register(w.cronSpec, task, opts...)
		if err != nil {
			w.server.Shutdown()
			return fmt.Errorf("register reminder schedule %q: %w", w.cronSpec, err)
		}
		if err := w.scheduler.Start(); err != nil {
			w.server.Shutdown()
			return fmt.Errorf("start scheduler: %w", err)
		}
		w.logger.Info("Daily reminders scheduled", zap.String("cron", w.cronSpec), zap.String("entry_id", id))
	}
	w.logger.Info("Task worker started")
	return nil
}

func (w *Worker) Shutdown() {
	if w.cronSpec != "" {
		w.scheduler.Shutdown()
	}
	w.server.Shutdown()
	w.logger.Info("Task worker stopped")
}

func handleNotificationTask(runner notification.Runner, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var job notification.Job
		if err := json.Unmarshal(task.Payload(), &job); err != nil {
			logger.Error("Invalid notification payload", zap.Error(err))
			return fmt.Errorf("decode notification job: %v: %w", err, asynq.SkipRetry)
		}
		if err := runner.Run(ctx, job); err != nil {
			logger.Warn("Notification delivery failed",
				zap.String("kind", string(job.Kind)),
				zap.String("target", string(job.Target)),
				zap.Error(err))
			return err
		}
		return nil
	}
}

func handleDailyReminders(reminders ReminderSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		sent, total, err := reminders.SendDailyReminders(ctx)
		if err != nil {
			logger.Error("Daily reminders failed", zap.Error(err))
			return err
		}
		logger.Info("Daily reminders sent", zap.Int("sent", sent), zap.Int("total", total))
		return nil
	}
}
