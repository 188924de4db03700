package courses

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oversea-labs/compass/internal/shared"
)

const activeCacheKey = "compass:courses:active"

// Service handles course business logic. The active-course list is cached
// in Redis with the same TTL as the blog cache.
type Service struct {
	repo     Repository
	redis    *redis.Client
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService builds a Service instance. A nil redis client disables caching.
func NewService(repo Repository, client *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, redis: client, cacheTTL: cacheTTL, now: time.Now}
}

// ListActive returns active courses, served from cache when warm.
func (s *Service) ListActive(ctx context.Context) ([]Course, error) {
	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, activeCacheKey).Bytes(); err == nil {
			var cached []Course
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}
	list, err := s.repo.List(ctx, StatusActive)
	if err != nil {
		return nil, err
	}
	if s.redis != nil {
		if raw, err := json.Marshal(list); err == nil {
			s.redis.Set(ctx, activeCacheKey, raw, s.cacheTTL)
		}
	}
	return list, nil
}

// GetActive returns a single active course by slug.
func (s *Service) GetActive(ctx context.Context, slug string) (*Course, error) {
	return s.repo.FindBySlug(ctx, slug, StatusActive)
}

// ListAll returns every course for the admin area.
func (s *Service) ListAll(ctx context.Context) ([]Course, error) {
	return s.repo.List(ctx, "")
}

// Create stores a new course; an empty status defaults to inactive so a
// half-filled record never shows up on the public site.
func (s *Service) Create(ctx context.Context, req CreateCourseRequest) (*Course, error) {
	status := req.Status
	if status == "" {
		status = StatusInactive
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}
	now := s.now().UTC()
	course := &Course{
		Title:          req.Title,
		Slug:           shared.Slugify(req.Title),
		Description:    req.Description,
		University:     req.University,
		Country:        req.Country,
		DurationMonths: req.DurationMonths,
		TuitionFee:     req.TuitionFee,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	id, err := s.repo.Insert(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id
	s.invalidate(ctx)
	return course, nil
}

// Update applies the non-nil fields of req to an existing course.
func (s *Service) Update(ctx context.Context, id string, req UpdateCourseRequest) (*Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		course.Title = *req.Title
		course.Slug = shared.Slugify(*req.Title)
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.University != nil {
		course.University = *req.University
	}
	if req.Country != nil {
		course.Country = *req.Country
	}
	if req.DurationMonths != nil {
		course.DurationMonths = *req.DurationMonths
	}
	if req.TuitionFee != nil {
		course.TuitionFee = *req.TuitionFee
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		course.Status = *req.Status
	}
	course.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return course, nil
}

// Delete removes a course.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.redis != nil {
		s.redis.Del(ctx, activeCacheKey)
	}
}
