package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeNotificationDeliver = "notification:deliver"
	TypeDailyReminders      = "notification:daily_reminders"

	QueueNotifications = "notifications"
	QueueScheduled     = "scheduled"
)

// NewNotificationTask wraps a JSON-serializable notification job for the worker.
func NewNotificationTask(job any, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(job)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationDeliver, b)
	opts := []asynq.Option{
		asynq.Queue(QueueNotifications),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(time.Minute),
	}
	return task, opts, nil
}

// NewDailyRemindersTask is the periodic task that fans out tomorrow's booking reminders.
func NewDailyRemindersTask() (*asynq.Task, []asynq.Option) {
	task := asynq.NewTask(TypeDailyReminders, nil)
	opts := []asynq.Option{
		asynq.Queue(QueueScheduled),
		asynq.MaxRetry(1),
		asynq.Unique(time.Hour),
	}
	return task, opts
}
