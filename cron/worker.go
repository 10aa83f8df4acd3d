package cron

import (
	"context"
	"encoding/json"
	"time"

	"lablink/config"
	"lablink/models"
	"lablink/services/notification"
	"lablink/services/tasks"
	"lablink/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotificationWorker runs the async push worker in background.
func InitNotificationWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationSend, handleNotificationTask(notifSvc))

	go monitorRedisConnection()

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("notification worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("notification worker exhausted retry attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleNotificationTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.NotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid notification payload", zap.Error(err))
			return err
		}

		logger.Info("delivering notification",
			zap.String("target", p.Target),
			zap.String("id", p.ID),
			zap.String("event", p.Event))

		if err := notifSvc.Deliver(ctx, p); err != nil {
			logger.Error("notification delivery failed", zap.String("event", p.Event), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("redis task queue connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
