package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ActivityRepository interface {
	Create(ctx context.Context, a *ActivityLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*ActivityLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByUser returns a page of the user's activities, newest first. A
	// non-zero day restricts results to occurred_at in [day, day+24h).
	ListByUser(ctx context.Context, userID uuid.UUID, day time.Time, limit, offset int) ([]*ActivityLog, int, error)
	// ListForDay returns every activity with occurred_at in the given day.
	ListForDay(ctx context.Context, userID uuid.UUID, dayStart time.Time) ([]*ActivityLog, error)
}
