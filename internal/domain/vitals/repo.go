package vitals

import (
	"context"

	"github.com/google/uuid"
)

type VitalRepository interface {
	Create(ctx context.Context, v *VitalReading) error
	GetByID(ctx context.Context, id uuid.UUID) (*VitalReading, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByUser returns a page of the user's readings, newest first,
	// optionally filtered to one type.
	ListByUser(ctx context.Context, userID uuid.UUID, vitalType string, limit, offset int) ([]*VitalReading, int, error)
	// LatestByType returns the most recent reading per type for the user.
	LatestByType(ctx context.Context, userID uuid.UUID) ([]*VitalReading, error)
}
