package blogs

import (
	"context"
	"time"

	"github.com/oversea-labs/compass/internal/shared"
)

// Service handles blog business logic.
type Service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

// NewService builds a Service instance.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// ListPublished returns published posts, served from cache when warm.
func (s *Service) ListPublished(ctx context.Context) ([]Blog, error) {
	if posts, ok := s.cache.GetPublished(ctx); ok {
		return posts, nil
	}
	posts, err := s.repo.List(ctx, StatusPublished)
	if err != nil {
		return nil, err
	}
	s.cache.SetPublished(ctx, posts)
	return posts, nil
}

// GetPublished returns a single published post by slug.
func (s *Service) GetPublished(ctx context.Context, slug string) (*Blog, error) {
	return s.repo.FindBySlug(ctx, slug, StatusPublished)
}

// ListAll returns every post for the admin area.
func (s *Service) ListAll(ctx context.Context) ([]Blog, error) {
	return s.repo.List(ctx, "")
}

// Create stores a new post. The slug is derived from the title; an empty
// status defaults to draft.
func (s *Service) Create(ctx context.Context, req CreateBlogRequest) (*Blog, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	now := s.now().UTC()
	blog := &Blog{
		Title:     req.Title,
		Slug:      shared.Slugify(req.Title),
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Image:     req.Image,
		Author:    req.Author,
		Tags:      req.Tags,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.repo.Insert(ctx, blog)
	if err != nil {
		return nil, err
	}
	blog.ID = id
	s.cache.Invalidate(ctx)
	return blog, nil
}

// Update applies the non-nil fields of req to an existing post. A changed
// title re-derives the slug.
func (s *Service) Update(ctx context.Context, id string, req UpdateBlogRequest) (*Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		blog.Title = *req.Title
		blog.Slug = shared.Slugify(*req.Title)
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.Excerpt != nil {
		blog.Excerpt = *req.Excerpt
	}
	if req.Image != nil {
		blog.Image = *req.Image
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}
	if req.Tags != nil {
		blog.Tags = *req.Tags
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		blog.Status = *req.Status
	}
	blog.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return blog, nil
}

// Delete removes a post.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
