package caregiver

import (
	"context"

	"github.com/google/uuid"
)

type GrantRepository interface {
	Create(ctx context.Context, g *AccessGrant) error
	GetByID(ctx context.Context, id uuid.UUID) (*AccessGrant, error)
	Update(ctx context.Context, g *AccessGrant) error
	ListForSenior(ctx context.Context, seniorID uuid.UUID) ([]*AccessGrant, error)
	ListForCaregiver(ctx context.Context, caregiverID uuid.UUID) ([]*AccessGrant, error)
	// FindActivePair returns the pending or approved grant for the pair, if
	// one exists.
	FindActivePair(ctx context.Context, seniorID, caregiverID uuid.UUID) (*AccessGrant, error)
}
