package medication

import (
	"time"

	"github.com/google/uuid"
)

// Medication maps to the medication table. A medication is either daily
// (taken at fixed times every day) or as-needed (PRN).
type Medication struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Dosage      string    `db:"dosage" json:"dosage"`
	Type        string    `db:"type" json:"type"`
	Frequency   string    `db:"frequency" json:"frequency"`
	IsDaily     bool      `db:"is_daily" json:"is_daily"`
	Times       []string  `db:"times" json:"times"`
	Instruction *string   `db:"instruction" json:"instruction,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// UsageLog maps to the usage_log table. One row per taken dose: every PRN
// use, and every daily dose marked as taken.
type UsageLog struct {
	ID           uuid.UUID `db:"id" json:"id"`
	MedicationID uuid.UUID `db:"medication_id" json:"medication_id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	TakenAt      time.Time `db:"taken_at" json:"taken_at"`
	Note         *string   `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ScheduleStatus classifies a schedule entry's urgency relative to now.
type ScheduleStatus string

const (
	StatusOverdue  ScheduleStatus = "overdue"
	StatusDueNow   ScheduleStatus = "due_now"
	StatusUpcoming ScheduleStatus = "upcoming"
)

// ScheduleEntry is one derived same-day reminder instance. Entries are
// recomputed on every request and never persisted.
type ScheduleEntry struct {
	ID            string         `json:"id"`
	MedicationID  uuid.UUID      `json:"medication_id"`
	Name          string         `json:"name"`
	Dosage        string         `json:"dosage"`
	Type          string         `json:"type"`
	Instruction   *string        `json:"instruction,omitempty"`
	ScheduledTime string         `json:"scheduled_time"`
	Status        ScheduleStatus `json:"status"`
	IsDaily       bool           `json:"is_daily"`
}

// Stats aggregates a user's medications for the dashboard.
type Stats struct {
	TotalMedications       int `json:"total_medications"`
	ActiveDailyMedications int `json:"active_daily_medications"`
	ActivePrnMedications   int `json:"active_prn_medications"`
	TotalReminders         int `json:"total_reminders"`
	OverdueMedications     int `json:"overdue_medications"`
	MedicationsDueNow      int `json:"medications_due_now"`
	PrnUsedToday           int `json:"prn_used_today"`
}
