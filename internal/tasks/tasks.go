package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/accumanage/portal/internal/events"
)

// Task type constants
const (
	TypeAccountWebhook = "notification:account_webhook"
)

// WebhookPayload is the body delivered to the notification webhook.
type WebhookPayload struct {
	EventID   string           `json:"event_id"`
	EventType events.EventType `json:"event_type"`
	Actor     events.Actor     `json:"actor"`
	Timestamp time.Time        `json:"timestamp"`
	Data      json.RawMessage  `json:"data"`
}

// NewAccountWebhookTask creates a task delivering event to the webhook.
func NewAccountWebhookTask(event events.Event) (*asynq.Task, error) {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	payload, err := json.Marshal(WebhookPayload{
		EventID:   event.ID,
		EventType: event.Type,
		Actor:     event.Actor,
		Timestamp: event.Timestamp,
		Data:      data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeAccountWebhook, payload), nil
}

// ParseWebhookPayload parses task payload from Asynq task
func ParseWebhookPayload(task *asynq.Task) (WebhookPayload, error) {
	var payload WebhookPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return payload, nil
}
