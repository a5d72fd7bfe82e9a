package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_reporting_system/internal/models"
)

const eventChannel = "incident_events"

// Event is the bus payload announcing one durably created incident.
type Event struct {
	Incident *models.Incident `json:"incident"`
}

// RedisPublisher announces created incidents over Redis Pub/Sub. Pub/Sub
// rather than a queue, because every instance's hub must observe every
// create; a queue would hand each event to a single consumer.
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{redisClient: client}
}

// Publish sends the created incident to the feed bus. Callers only invoke
// this after the store create has returned, preserving the rule that nothing
// is observable before it is durable.
func (p *RedisPublisher) Publish(ctx context.Context, incident *models.Incident) error {
	payload, err := json.Marshal(Event{Incident: incident})
	if err != nil {
		return fmt.Errorf("failed to marshal feed event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, eventChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish feed event to Redis: %w", err)
	}
	return nil
}
