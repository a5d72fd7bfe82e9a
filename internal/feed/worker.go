package feed

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Worker bridges the Redis event bus into the local hub. Each instance runs
// one worker; together with the pub/sub fan-out this gives every subscriber
// on every instance the same ordered view.
type Worker struct {
	redisClient *redis.Client
	hub         *Hub
	logger      *logrus.Logger
}

func NewWorker(redisClient *redis.Client, hub *Hub, logger *logrus.Logger) *Worker {
	return &Worker{
		redisClient: redisClient,
		hub:         hub,
		logger:      logger,
	}
}

// Start launches the bridge goroutine. It exits when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting feed worker...")
	sub := w.redisClient.Subscribe(ctx, eventChannel)

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping feed worker.")
				return
			case msg, ok := <-ch:
				if !ok {
					w.logger.Warn("Feed event channel closed.")
					return
				}

				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal feed event")
					continue
				}
				if event.Incident == nil {
					continue
				}
				w.hub.Insert(event.Incident)
			}
		}
	}()
}
