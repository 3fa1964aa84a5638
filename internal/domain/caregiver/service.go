package caregiver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	grants GrantRepository
}

func NewService(repo GrantRepository) *Service {
	return &Service{grants: repo}
}

// RequestAccess opens a pending grant from a caregiver to a senior. Only one
// pending or approved grant may exist per pair at a time.
func (s *Service) RequestAccess(ctx context.Context, seniorID, caregiverID uuid.UUID, relationship string) (*AccessGrant, error) {
	if seniorID == uuid.Nil || caregiverID == uuid.Nil {
		return nil, fmt.Errorf("senior_id and caregiver_id are required")
	}
	if seniorID == caregiverID {
		return nil, fmt.Errorf("cannot request access to yourself")
	}
	if relationship == "" {
		return nil, fmt.Errorf("relationship is required")
	}
	existing, err := s.grants.FindActivePair(ctx, seniorID, caregiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("a %s grant already exists for this pair", existing.Status)
	}

	g := &AccessGrant{
		SeniorID:     seniorID,
		CaregiverID:  caregiverID,
		Relationship: relationship,
		Status:       StatusPending,
		RequestedAt:  time.Now(),
	}
	if err := s.grants.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) GetGrant(ctx context.Context, id uuid.UUID) (*AccessGrant, error) {
	return s.grants.GetByID(ctx, id)
}

// Approve moves a pending grant to approved. Only the senior responds to a
// request; the handler enforces who may call this.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*AccessGrant, error) {
	g, err := s.grants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("grant not found")
	}
	if g.Status != StatusPending {
		return nil, fmt.Errorf("cannot approve a %s grant", g.Status)
	}
	now := time.Now()
	g.Status = StatusApproved
	g.RespondedAt = &now
	if err := s.grants.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Revoke ends a pending or approved grant.
func (s *Service) Revoke(ctx context.Context, id uuid.UUID) (*AccessGrant, error) {
	g, err := s.grants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("grant not found")
	}
	if g.Status == StatusRevoked {
		return nil, fmt.Errorf("grant is already revoked")
	}
	now := time.Now()
	g.Status = StatusRevoked
	g.RespondedAt = &now
	if err := s.grants.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) ListForSenior(ctx context.Context, seniorID uuid.UUID) ([]*AccessGrant, error) {
	return s.grants.ListForSenior(ctx, seniorID)
}

func (s *Service) ListForCaregiver(ctx context.Context, caregiverID uuid.UUID) ([]*AccessGrant, error) {
	return s.grants.ListForCaregiver(ctx, caregiverID)
}

// HasApprovedAccess satisfies the AccessChecker interfaces of the data
// domains.
func (s *Service) HasApprovedAccess(ctx context.Context, seniorID, caregiverID uuid.UUID) (bool, error) {
	g, err := s.grants.FindActivePair(ctx, seniorID, caregiverID)
	if err != nil {
		return false, err
	}
	return g != nil && g.Status == StatusApproved, nil
}
