package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/accumanage/portal/internal/config"
	"github.com/accumanage/portal/internal/domain"
	"github.com/accumanage/portal/internal/events"
	"github.com/accumanage/portal/internal/tasks"
)

func deletedUserTask(t *testing.T) *asynq.Task {
	t.Helper()
	event := events.New(events.EventUserDeleted,
		events.Actor{UserID: "root", Role: domain.RoleSuperadmin},
		events.UserPayload{UserID: "u-9", Email: "gone@example.com"})
	task, err := tasks.NewAccountWebhookTask(event)
	require.NoError(t, err)
	return task
}

func TestWebhookDelivery(t *testing.T) {
	var received tasks.WebhookPayload
	var eventHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		eventHeader = r.Header.Get("X-Event-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	delivery := NewWebhookDelivery(config.NotificationConfig{WebhookURL: srv.URL}, zap.NewNop())
	require.NoError(t, delivery.HandleAccountWebhook(context.Background(), deletedUserTask(t)))

	assert.Equal(t, string(events.EventUserDeleted), eventHeader)
	assert.Equal(t, "root", received.Actor.UserID)
	assert.JSONEq(t, `{"user_id":"u-9","email":"gone@example.com"}`, string(received.Data))
}

func TestWebhookDeliveryRetriesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	delivery := NewWebhookDelivery(config.NotificationConfig{WebhookURL: srv.URL}, nil)
	err := delivery.HandleAccountWebhook(context.Background(), deletedUserTask(t))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestWebhookDeliverySkipsBadPayload(t *testing.T) {
	delivery := NewWebhookDelivery(config.NotificationConfig{WebhookURL: "http://unused.invalid"}, nil)
	err := delivery.HandleAccountWebhook(context.Background(), asynq.NewTask(tasks.TypeAccountWebhook, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
