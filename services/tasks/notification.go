package tasks

import (
	"encoding/json"

	"lablink/models"

	"github.com/hibiken/asynq"
)

const TypeNotificationSend = "notification:send"

// NewNotificationTask wraps a push payload as an asynq task for the worker.
func NewNotificationTask(payload models.NotificationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationSend, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}
