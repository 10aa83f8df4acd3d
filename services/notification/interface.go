package notification

import (
	"context"
	"fmt"

	labRepo "lablink/database/repository/lab"
	userRepo "lablink/database/repository/user"
	"lablink/models"
	"lablink/services/tasks"
	"lablink/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationService defines methods for dispatching FCM pushes.
type NotificationService interface {
	// SendDentistPush looks up a dentist's FCM token and sends a push.
	SendDentistPush(ctx context.Context, userID, title, body string, data map[string]string) error
	// SendLabPush looks up a lab's FCM token and sends a push.
	SendLabPush(ctx context.Context, labID, title, body string, data map[string]string) error
	// Dispatch hands a payload to the background worker. Dispatch never
	// returns an error to the caller: a notification must not break the
	// business operation that triggered it.
	Dispatch(ctx context.Context, payload models.NotificationPayload)
	// Deliver sends a payload synchronously (the worker's entry point).
	Deliver(ctx context.Context, payload models.NotificationPayload) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	UserRepo   userRepo.UserRepository
	LabRepo    labRepo.LabRepository
	TaskClient *asynq.Client
}

var _ NotificationService = (*DefaultNotificationService)(nil)

func NewDefaultNotificationService(
	users userRepo.UserRepository,
	labs labRepo.LabRepository,
	taskClient *asynq.Client,
) (*DefaultNotificationService, error) {
	if users == nil || labs == nil {
		return nil, fmt.Errorf("notification service initialization error: user or lab repository is nil")
	}
	return &DefaultNotificationService{
		UserRepo:   users,
		LabRepo:    labs,
		TaskClient: taskClient,
	}, nil
}

func (s *DefaultNotificationService) SendDentistPush(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	u, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("SendDentistPush: could not find user %s: %w", userID, err)
	}
	if u == nil || u.FCMToken == "" {
		// No push target registered; nothing to deliver.
		return nil
	}
	return s.send(ctx, u.FCMToken, title, body, data)
}

func (s *DefaultNotificationService) SendLabPush(
	ctx context.Context,
	labID, title, body string,
	data map[string]string,
) error {
	lab, err := s.LabRepo.GetByID(labID)
	if err != nil {
		return fmt.Errorf("SendLabPush: could not find lab %s: %w", labID, err)
	}
	if lab == nil || lab.FCMToken == "" {
		return nil
	}
	return s.send(ctx, lab.FCMToken, title, body, data)
}

func (s *DefaultNotificationService) send(ctx context.Context, token, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		utils.GetLogger().Warn("FCM client not initialized, dropping push", zap.String("title", title))
		return nil
	}
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

// Dispatch enqueues the payload for the background worker. Without a task
// client (tests, degraded Redis) it falls back to a synchronous send. Failures
// are logged only.
func (s *DefaultNotificationService) Dispatch(ctx context.Context, payload models.NotificationPayload) {
	logger := utils.GetLogger()

	if s.TaskClient != nil {
		task, opts, err := tasks.NewNotificationTask(payload)
		if err == nil {
			if _, err = s.TaskClient.EnqueueContext(ctx, task, opts...); err == nil {
				return
			}
		}
		logger.Error("failed to enqueue notification, sending inline",
			zap.String("event", payload.Event), zap.Error(err))
	}

	if err := s.Deliver(ctx, payload); err != nil {
		logger.Error("failed to deliver notification",
			zap.String("event", payload.Event),
			zap.String("target", payload.Target),
			zap.Error(err))
	}
}

// Deliver routes a payload to the right recipient kind.
func (s *DefaultNotificationService) Deliver(ctx context.Context, payload models.NotificationPayload) error {
	switch payload.Target {
	case "dentist":
		return s.SendDentistPush(ctx, payload.ID, payload.Title, payload.Body, payload.Data)
	case "lab":
		return s.SendLabPush(ctx, payload.ID, payload.Title, payload.Body, payload.Data)
	default:
		utils.GetLogger().Warn("unknown notification target", zap.String("target", payload.Target))
		return nil
	}
}
