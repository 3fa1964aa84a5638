package caregiver

import (
	"time"

	"github.com/google/uuid"
)

// GrantStatus tracks the lifecycle of an access grant. A grant starts
// pending, the senior approves it, and either side may revoke it. Revoked is
// terminal.
type GrantStatus string

const (
	StatusPending  GrantStatus = "pending"
	StatusApproved GrantStatus = "approved"
	StatusRevoked  GrantStatus = "revoked"
)

// AccessGrant maps to the access_grant table and links a caregiver to the
// senior whose data they may read.
type AccessGrant struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	SeniorID     uuid.UUID   `db:"senior_id" json:"senior_id"`
	CaregiverID  uuid.UUID   `db:"caregiver_id" json:"caregiver_id"`
	Relationship string      `db:"relationship" json:"relationship"`
	Status       GrantStatus `db:"status" json:"status"`
	RequestedAt  time.Time   `db:"requested_at" json:"requested_at"`
	RespondedAt  *time.Time  `db:"responded_at" json:"responded_at,omitempty"`
}
