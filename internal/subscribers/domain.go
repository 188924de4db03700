// Package subscribers manages newsletter signups.
package subscribers

import (
	"fmt"
	"time"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Subscriber is a newsletter recipient.
type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrAlreadySubscribed = fmt.Errorf("%w: email is already subscribed", httpx.ErrConflict)

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
