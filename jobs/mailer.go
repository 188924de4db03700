package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/oversea-labs/compass/internal/observability"
)

// Mailer processes mail tasks. Delivery goes through the configured relay;
// until SMTP credentials are provisioned it logs the outgoing message.
type Mailer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	from    string
	to      string
}

// NewMailer constructs a Mailer.
func NewMailer(logger *slog.Logger, metrics *observability.Metrics, from, to string) *Mailer {
	return &Mailer{logger: logger, metrics: metrics, from: from, to: to}
}

// HandleContactNotification processes TaskTypeContactNotification tasks.
func (m *Mailer) HandleContactNotification(ctx context.Context, t *asynq.Task) error {
	var payload ContactNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		m.metrics.ObserveJob(TaskTypeContactNotification, "skip")
		return asynq.SkipRetry
	}
	m.logger.Info("contact notification",
		slog.String("from", m.from),
		slog.String("to", m.to),
		slog.String("ref", payload.Ref),
		slog.String("sender", payload.Email))
	m.metrics.ObserveJob(TaskTypeContactNotification, "ok")
	return nil
}

// HandleSubscriberWelcome processes TaskTypeSubscriberWelcome tasks.
func (m *Mailer) HandleSubscriberWelcome(ctx context.Context, t *asynq.Task) error {
	var payload SubscriberWelcomePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		m.metrics.ObserveJob(TaskTypeSubscriberWelcome, "skip")
		return asynq.SkipRetry
	}
	m.logger.Info("subscriber welcome",
		slog.String("from", m.from),
		slog.String("to", payload.Email))
	m.metrics.ObserveJob(TaskTypeSubscriberWelcome, "ok")
	return nil
}
