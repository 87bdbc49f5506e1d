package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"github.com/topnet/fleetfuel-core/internal/infrastructures"
)

// EventService publishes fire-and-forget events to the realtime relay
// via redis pub/sub. Publish failures are logged and never surface to
// the caller: events are a UI refresh hint, not a durability boundary.
type EventService struct {
	redis   *redis.Client
	channel string
}

func NewEventService(redisClient *redis.Client) *EventService {
	channel := "fleetfuel.events"
	if infrastructures.Config != nil && infrastructures.Config.EVENTS_CHANNEL != "" {
		channel = infrastructures.Config.EVENTS_CHANNEL
	}
	return &EventService{
		redis:   redisClient,
		channel: channel,
	}
}

func (s *EventService) Publish(eventType models.EventType, payload map[string]any) {
	event := models.Event{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logrus.Warnf("Could not marshal event %s: %v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.redis.Publish(ctx, s.channel, data).Err(); err != nil {
		logrus.Warnf("Could not publish event %s: %v", eventType, err)
	}
}
