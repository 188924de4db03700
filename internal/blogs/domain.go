// Package blogs manages blog posts for the public site and the admin area.
package blogs

import (
	"fmt"
	"time"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Post statuses. Only published posts are visible to anonymous visitors.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusArchived  = "archived"
)

// Blog is a single post.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Image     string    `json:"image"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Domain errors.
var (
	ErrNotFound      = fmt.Errorf("%w: blog post", httpx.ErrNotFound)
	ErrSlugTaken     = fmt.Errorf("%w: slug already in use", httpx.ErrConflict)
	ErrInvalidStatus = fmt.Errorf("%w: unknown blog status", httpx.ErrValidation)
)

// CreateBlogRequest is the admin payload for a new post.
type CreateBlogRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Excerpt string   `json:"excerpt"`
	Image   string   `json:"image"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
	Status  string   `json:"status"`
}

// UpdateBlogRequest carries optional field updates; nil means unchanged.
type UpdateBlogRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Excerpt *string   `json:"excerpt"`
	Image   *string   `json:"image"`
	Author  *string   `json:"author"`
	Tags    *[]string `json:"tags"`
	Status  *string   `json:"status"`
}

func validStatus(status string) bool {
	switch status {
	case StatusPublished, StatusDraft, StatusArchived:
		return true
	}
	return false
}
