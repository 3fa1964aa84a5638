package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	activities ActivityRepository
}

func NewService(repo ActivityRepository) *Service {
	return &Service{activities: repo}
}

var validActivityTypes = map[string]bool{
	TypeWalk: true, TypeExercise: true, TypeMeal: true,
	TypeSleep: true, TypeSocial: true, TypeOther: true,
}

func (s *Service) LogActivity(ctx context.Context, a *ActivityLog) error {
	if a.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if !validActivityTypes[a.Type] {
		return fmt.Errorf("invalid activity type: %s", a.Type)
	}
	if a.Description == "" {
		return fmt.Errorf("description is required")
	}
	if a.DurationMinutes != nil && *a.DurationMinutes < 0 {
		return fmt.Errorf("duration_minutes cannot be negative")
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now()
	}
	return s.activities.Create(ctx, a)
}

func (s *Service) GetActivity(ctx context.Context, id uuid.UUID) (*ActivityLog, error) {
	return s.activities.GetByID(ctx, id)
}

func (s *Service) ListActivities(ctx context.Context, userID uuid.UUID, day time.Time, limit, offset int) ([]*ActivityLog, int, error) {
	return s.activities.ListByUser(ctx, userID, day, limit, offset)
}

func (s *Service) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	return s.activities.Delete(ctx, id)
}

func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// TodaySummary aggregates the user's activity for the current local day.
func (s *Service) TodaySummary(ctx context.Context, userID uuid.UUID, now time.Time) (*TodaySummary, error) {
	day := startOfDay(now)
	items, err := s.activities.ListForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	summary := &TodaySummary{
		Date:    day.Format("2006-01-02"),
		ByType:  make(map[string]TypeSummary),
		Entries: len(items),
	}
	for _, a := range items {
		ts := summary.ByType[a.Type]
		ts.Count++
		if a.DurationMinutes != nil {
			ts.TotalMinutes += *a.DurationMinutes
		}
		summary.ByType[a.Type] = ts
	}
	return summary, nil
}
