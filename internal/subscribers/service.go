package subscribers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/oversea-labs/compass/jobs"
)

// TaskEnqueuer enqueues background tasks. Satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service handles subscription business logic.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	enqueuer TaskEnqueuer
	now      func() time.Time
}

// NewService builds a Service instance.
func NewService(logger *slog.Logger, repo Repository, enqueuer TaskEnqueuer) *Service {
	return &Service{logger: logger, repo: repo, enqueuer: enqueuer, now: time.Now}
}

// Subscribe records the email and enqueues a welcome mail. The unique index
// makes a duplicate signup surface as ErrAlreadySubscribed.
func (s *Service) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	sub := &Subscriber{Email: email, CreatedAt: s.now().UTC()}
	id, err := s.repo.Insert(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = id

	if s.enqueuer != nil {
		task, err := jobs.NewSubscriberWelcomeTask(jobs.SubscriberWelcomePayload{Email: email})
		if err == nil {
			_, err = s.enqueuer.EnqueueContext(ctx, task)
		}
		if err != nil {
			s.logger.Warn("enqueue subscriber welcome",
				slog.String("email", email),
				slog.Any("error", err))
		}
	}
	return sub, nil
}

// ListAll returns every subscriber for the admin area.
func (s *Service) ListAll(ctx context.Context) ([]Subscriber, error) {
	return s.repo.List(ctx)
}
