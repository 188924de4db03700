// Package courses manages the study-program catalogue.
package courses

import (
	"fmt"
	"time"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Course is a study program offered through a partner university.
type Course struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	University     string    `json:"university"`
	Country        string    `json:"country"`
	DurationMonths int       `json:"durationMonths"`
	TuitionFee     float64   `json:"tuitionFee"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

var (
	ErrNotFound      = fmt.Errorf("%w: course", httpx.ErrNotFound)
	ErrSlugTaken     = fmt.Errorf("%w: course slug already in use", httpx.ErrConflict)
	ErrInvalidStatus = fmt.Errorf("%w: unknown course status", httpx.ErrValidation)
)

func validStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}

type CreateCourseRequest struct {
	Title          string  `json:"title" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	University     string  `json:"university" validate:"required"`
	Country        string  `json:"country" validate:"required"`
	DurationMonths int     `json:"durationMonths" validate:"gte=0"`
	TuitionFee     float64 `json:"tuitionFee" validate:"gte=0"`
	Status         string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateCourseRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	University     *string  `json:"university"`
	Country        *string  `json:"country"`
	DurationMonths *int     `json:"durationMonths"`
	TuitionFee     *float64 `json:"tuitionFee"`
	Status         *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}
