package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockActivityRepo struct {
	logs []*ActivityLog
}

func (r *mockActivityRepo) Create(ctx context.Context, a *ActivityLog) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	r.logs = append(r.logs, a)
	return nil
}

func (r *mockActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (*ActivityLog, error) {
	for _, a := range r.logs {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (r *mockActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, a := range r.logs {
		if a.ID == id {
			r.logs = append(r.logs[:i], r.logs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("not found")
}

func (r *mockActivityRepo) ListByUser(ctx context.Context, userID uuid.UUID, day time.Time, limit, offset int) ([]*ActivityLog, int, error) {
	var items []*ActivityLog
	for _, a := range r.logs {
		if a.UserID != userID {
			continue
		}
		if !day.IsZero() && (a.OccurredAt.Before(day) || !a.OccurredAt.Before(day.Add(24*time.Hour))) {
			continue
		}
		items = append(items, a)
	}
	return items, len(items), nil
}

func (r *mockActivityRepo) ListForDay(ctx context.Context, userID uuid.UUID, dayStart time.Time) ([]*ActivityLog, error) {
	items, _, err := r.ListByUser(ctx, userID, dayStart, 0, 0)
	return items, err
}

func minutes(n int) *int { return &n }

func TestLogActivity_Valid(t *testing.T) {
	svc := NewService(&mockActivityRepo{})
	a := &ActivityLog{
		UserID:          uuid.New(),
		Type:            TypeWalk,
		Description:     "morning walk around the block",
		DurationMinutes: minutes(25),
	}
	if err := svc.LogActivity(context.Background(), a); err != nil {
		t.Fatalf("LogActivity: %v", err)
	}
	if a.OccurredAt.IsZero() {
		t.Error("occurred_at not defaulted")
	}
}

func TestLogActivity_Validation(t *testing.T) {
	svc := NewService(&mockActivityRepo{})

	tests := []struct {
		name   string
		mutate func(*ActivityLog)
	}{
		{"missing user", func(a *ActivityLog) { a.UserID = uuid.Nil }},
		{"bad type", func(a *ActivityLog) { a.Type = "nap" }},
		{"missing description", func(a *ActivityLog) { a.Description = "" }},
		{"negative duration", func(a *ActivityLog) { a.DurationMinutes = minutes(-5) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &ActivityLog{
				UserID:      uuid.New(),
				Type:        TypeExercise,
				Description: "stretching",
			}
			tt.mutate(a)
			if err := svc.LogActivity(context.Background(), a); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTodaySummary(t *testing.T) {
	repo := &mockActivityRepo{}
	svc := NewService(repo)
	userID := uuid.New()
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	entries := []*ActivityLog{
		{UserID: userID, Type: TypeWalk, Description: "park", DurationMinutes: minutes(30), OccurredAt: now.Add(-6 * time.Hour)},
		{UserID: userID, Type: TypeWalk, Description: "mailbox", DurationMinutes: minutes(10), OccurredAt: now.Add(-2 * time.Hour)},
		{UserID: userID, Type: TypeMeal, Description: "lunch", OccurredAt: now.Add(-3 * time.Hour)},
		{UserID: userID, Type: TypeWalk, Description: "yesterday", DurationMinutes: minutes(45), OccurredAt: now.Add(-26 * time.Hour)},
	}
	for _, a := range entries {
		if err := repo.Create(context.Background(), a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	summary, err := svc.TodaySummary(context.Background(), userID, now)
	if err != nil {
		t.Fatalf("TodaySummary: %v", err)
	}
	if summary.Date != "2026-08-31" {
		t.Errorf("date = %s, want 2026-08-31", summary.Date)
	}
	if summary.Entries != 3 {
		t.Errorf("entries = %d, want 3 (yesterday excluded)", summary.Entries)
	}
	walk := summary.ByType[TypeWalk]
	if walk.Count != 2 || walk.TotalMinutes != 40 {
		t.Errorf("walk = %+v, want count 2 / 40 min", walk)
	}
	meal := summary.ByType[TypeMeal]
	if meal.Count != 1 || meal.TotalMinutes != 0 {
		t.Errorf("meal = %+v, want count 1 / 0 min", meal)
	}
}

func TestTodaySummary_Empty(t *testing.T) {
	svc := NewService(&mockActivityRepo{})
	summary, err := svc.TodaySummary(context.Background(), uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("TodaySummary: %v", err)
	}
	if summary.Entries != 0 || len(summary.ByType) != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}
