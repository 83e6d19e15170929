package worker

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/accumanage/portal/internal/config"
	"github.com/accumanage/portal/internal/tasks"
)

// WebhookDelivery posts account-change notifications to the configured URL.
type WebhookDelivery struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewWebhookDelivery creates the delivery handler.
func NewWebhookDelivery(cfg config.NotificationConfig, logger *zap.Logger) *WebhookDelivery {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookDelivery{
		url:    cfg.WebhookURL,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// HandleAccountWebhook delivers one task. Non-2xx responses return an error
// so asynq retries the task.
func (d *WebhookDelivery) HandleAccountWebhook(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParseWebhookPayload(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(t.Payload()))
	if err != nil {
		return fmt.Errorf("build webhook request: %v: %w", err, asynq.SkipRetry)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", string(payload.EventType))

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	d.logger.Info("webhook delivered",
		zap.String("event_id", payload.EventID),
		zap.String("event_type", string(payload.EventType)))
	return nil
}

// RedisOpt maps the Redis configuration onto asynq's connection options.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewWebhookServer builds the asynq server and its task mux.
func NewWebhookServer(cfg config.RedisConfig, delivery *WebhookDelivery, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	server := asynq.NewServer(RedisOpt(cfg), asynq.Config{
		Concurrency: 4,
		Logger:      logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAccountWebhook, delivery.HandleAccountWebhook)
	return server, mux
}
