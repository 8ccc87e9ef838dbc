// Package announcement stores the notices shown on the home page.
package announcement

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mind-engage/eduhub/internal/validate"
)

var ErrNotFound = errors.New("announcement not found")

type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required,min=3,max=100"`
	Content   string    `json:"content" validate:"required,min=10,max=1000"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

func (a *Announcement) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Content = strings.TrimSpace(a.Content)
}

func (a Announcement) Validate() error {
	return validate.Struct(a)
}

type Store interface {
	// List returns newest first; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]Announcement, error)
	Get(ctx context.Context, id string) (Announcement, error)
	Create(ctx context.Context, a Announcement) (Announcement, error)
	Update(ctx context.Context, a Announcement) (Announcement, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
