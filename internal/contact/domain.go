// Package contact receives contact-form submissions from the public site.
package contact

import (
	"fmt"
	"time"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Submission is a stored contact-form entry. Ref is a short opaque
// reference the visitor can quote in follow-up mail.
type Submission struct {
	ID        string    `json:"id"`
	Ref       string    `json:"ref"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrNotFound = fmt.Errorf("%w: contact submission", httpx.ErrNotFound)

type SubmitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}
