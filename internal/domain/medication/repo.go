package medication

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByUser returns a page of the user's medications, optionally only
	// active ones, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool, limit, offset int) ([]*Medication, int, error)
	// ListAllByUser returns every medication for the user, active and
	// inactive, without pagination.
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]*Medication, error)
}

type UsageLogRepository interface {
	Create(ctx context.Context, u *UsageLog) error
	// ListForDay returns the user's usage logs with taken_at in
	// [dayStart, dayStart+24h), in insertion order.
	ListForDay(ctx context.Context, userID uuid.UUID, dayStart time.Time) ([]*UsageLog, error)
	ListByMedication(ctx context.Context, medicationID uuid.UUID, limit, offset int) ([]*UsageLog, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
