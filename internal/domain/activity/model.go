package activity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog maps to the activity_log table.
type ActivityLog struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	Type            string    `db:"type" json:"type"`
	Description     string    `db:"description" json:"description"`
	DurationMinutes *int      `db:"duration_minutes" json:"duration_minutes,omitempty"`
	OccurredAt      time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

const (
	TypeWalk     = "walk"
	TypeExercise = "exercise"
	TypeMeal     = "meal"
	TypeSleep    = "sleep"
	TypeSocial   = "social"
	TypeOther    = "other"
)

// TypeSummary aggregates one activity type for the day.
type TypeSummary struct {
	Count        int `json:"count"`
	TotalMinutes int `json:"total_minutes"`
}

// TodaySummary groups today's activity by type.
type TodaySummary struct {
	Date    string                 `json:"date"`
	ByType  map[string]TypeSummary `json:"by_type"`
	Entries int                    `json:"entries"`
}
