// Package gallery manages the image gallery shown on the public site.
package gallery

import (
	"fmt"
	"time"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

const (
	StatusVisible = "visible"
	StatusHidden  = "hidden"
)

// Item is a single gallery entry.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	Category  string    `json:"category"`
	SortOrder int       `json:"sortOrder"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrNotFound = fmt.Errorf("%w: gallery item", httpx.ErrNotFound)

type CreateItemRequest struct {
	Title     string `json:"title" validate:"required"`
	ImageURL  string `json:"imageUrl" validate:"required,url"`
	Category  string `json:"category"`
	SortOrder int    `json:"sortOrder"`
	Status    string `json:"status" validate:"omitempty,oneof=visible hidden"`
}
