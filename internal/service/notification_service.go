package service

import (
	"context"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/accumanage/portal/internal/config"
	"github.com/accumanage/portal/internal/events"
	"github.com/accumanage/portal/internal/tasks"
)

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NotificationService turns session and account events into audit log lines
// and outbound notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	queue      TaskEnqueuer
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. A nil queue disables webhook
// delivery.
func NewNotificationService(dispatcher events.Dispatcher, queue TaskEnqueuer, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		queue:      queue,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSessionEstablished, n.handleAudit)
	n.dispatcher.Subscribe(events.EventSessionTerminated, n.handleAudit)
	n.dispatcher.Subscribe(events.EventLoginFailed, n.handleLoginFailed)
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleAudit)
	n.dispatcher.Subscribe(events.EventUserRoleChanged, n.handleAccountChange)
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleAccountChange)
}

func (n *NotificationService) handleAudit(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), auditFields(event)...)
	return nil
}

func (n *NotificationService) handleLoginFailed(_ context.Context, event events.Event) error {
	n.logger.Warn(string(event.Type), auditFields(event)...)
	return nil
}

func (n *NotificationService) handleAccountChange(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), auditFields(event)...)
	return n.enqueueWebhook(ctx, event)
}

func (n *NotificationService) enqueueWebhook(_ context.Context, event events.Event) error {
	if n.queue == nil || strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return nil
	}
	task, err := tasks.NewAccountWebhookTask(event)
	if err != nil {
		return err
	}
	info, err := n.queue.Enqueue(task, asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
	if err != nil {
		return err
	}
	n.logger.Debug("webhook enqueued",
		zap.String("event_id", event.ID),
		zap.String("task_id", info.ID))
	return nil
}

func auditFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("actor_id", event.Actor.UserID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	}
}
