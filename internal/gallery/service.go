package gallery

import (
	"context"
	"time"
)

// Service handles gallery business logic.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ListPublic returns visible items in display order.
func (s *Service) ListPublic(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx, StatusVisible)
}

// ListAll returns every item for the admin area.
func (s *Service) ListAll(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx, "")
}

// Create stores a new item; an empty status defaults to hidden.
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*Item, error) {
	status := req.Status
	if status == "" {
		status = StatusHidden
	}
	item := &Item{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Category:  req.Category,
		SortOrder: req.SortOrder,
		Status:    status,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return item, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
