package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/oversea-labs/compass/jobs"
)

// TaskEnqueuer enqueues background tasks. Satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service handles contact-form business logic.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	enqueuer TaskEnqueuer
	now      func() time.Time
}

// NewService builds a Service instance. A nil enqueuer disables the
// notification mail.
func NewService(logger *slog.Logger, repo Repository, enqueuer TaskEnqueuer) *Service {
	return &Service{logger: logger, repo: repo, enqueuer: enqueuer, now: time.Now}
}

// Submit persists the submission and enqueues a staff notification. Enqueue
// failures are logged, not surfaced: the visitor's message is already safe
// in the store.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Submission, error) {
	sub := &Submission{
		Ref:       uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.repo.Insert(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = id

	if s.enqueuer != nil {
		task, err := jobs.NewContactNotificationTask(jobs.ContactNotificationPayload{
			Ref:     sub.Ref,
			Name:    sub.Name,
			Email:   sub.Email,
			Phone:   sub.Phone,
			Message: sub.Message,
		})
		if err == nil {
			_, err = s.enqueuer.EnqueueContext(ctx, task)
		}
		if err != nil {
			s.logger.Warn("enqueue contact notification",
				slog.String("ref", sub.Ref),
				slog.Any("error", err))
		}
	}
	return sub, nil
}

// ListAll returns every submission for the admin area.
func (s *Service) ListAll(ctx context.Context) ([]Submission, error) {
	return s.repo.List(ctx)
}
