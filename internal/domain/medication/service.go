package medication

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	medications MedicationRepository
	usage       UsageLogRepository
}

func NewService(meds MedicationRepository, usage UsageLogRepository) *Service {
	return &Service{medications: meds, usage: usage}
}

var validMedTypes = map[string]bool{
	"pill": true, "liquid": true, "injection": true, "cream": true, "inhaler": true,
}

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validateMedication(m *Medication) error {
	if m.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	if m.Frequency == "" {
		return fmt.Errorf("frequency is required")
	}
	if !validMedTypes[m.Type] {
		return fmt.Errorf("invalid type: %s", m.Type)
	}
	if m.IsDaily {
		if len(m.Times) == 0 {
			return fmt.Errorf("times is required for daily medications")
		}
		for _, t := range m.Times {
			if !timePattern.MatchString(t) {
				return fmt.Errorf("invalid time %q, expected HH:MM", t)
			}
		}
	} else {
		// Times carry no meaning for as-needed medications.
		m.Times = nil
	}
	return nil
}

func (s *Service) CreateMedication(ctx context.Context, m *Medication) error {
	if err := validateMedication(m); err != nil {
		return err
	}
	m.IsActive = true
	return s.medications.Create(ctx, m)
}

func (s *Service) GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.medications.GetByID(ctx, id)
}

func (s *Service) ListMedications(ctx context.Context, userID uuid.UUID, activeOnly bool, limit, offset int) ([]*Medication, int, error) {
	return s.medications.ListByUser(ctx, userID, activeOnly, limit, offset)
}

func (s *Service) UpdateMedication(ctx context.Context, m *Medication) error {
	existing, err := s.medications.GetByID(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("medication not found")
	}
	m.UserID = existing.UserID
	if err := validateMedication(m); err != nil {
		return err
	}
	return s.medications.Update(ctx, m)
}

// DeactivateMedication excludes the medication from schedules and stats
// without deleting its history.
func (s *Service) DeactivateMedication(ctx context.Context, id uuid.UUID) error {
	m, err := s.medications.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("medication not found")
	}
	m.IsActive = false
	return s.medications.Update(ctx, m)
}

func (s *Service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	return s.medications.Delete(ctx, id)
}

// LogUsage appends a usage event: a PRN dose, or a daily dose marked as
// taken. TakenAt defaults to now when unset.
func (s *Service) LogUsage(ctx context.Context, u *UsageLog) error {
	if u.MedicationID == uuid.Nil {
		return fmt.Errorf("medication_id is required")
	}
	m, err := s.medications.GetByID(ctx, u.MedicationID)
	if err != nil {
		return fmt.Errorf("medication not found")
	}
	if !m.IsActive {
		return fmt.Errorf("medication is inactive")
	}
	u.UserID = m.UserID
	if u.TakenAt.IsZero() {
		u.TakenAt = time.Now()
	}
	return s.usage.Create(ctx, u)
}

func (s *Service) ListUsageByMedication(ctx context.Context, medicationID uuid.UUID, limit, offset int) ([]*UsageLog, int, error) {
	return s.usage.ListByMedication(ctx, medicationID, limit, offset)
}

func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// TodaySchedule fetches the user's active medications and today's usage and
// projects the current reminder timeline. The result goes stale as time
// advances; clients poll it (the apps refresh every 60 seconds).
func (s *Service) TodaySchedule(ctx context.Context, userID uuid.UUID, now time.Time) ([]ScheduleEntry, error) {
	all, err := s.medications.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	usage, err := s.usage.ListForDay(ctx, userID, startOfDay(now))
	if err != nil {
		return nil, err
	}
	return ProjectTodaySchedule(activeOnly(all), usage, now), nil
}

// DashboardStats projects today's schedule and folds it into counters.
func (s *Service) DashboardStats(ctx context.Context, userID uuid.UUID, now time.Time) (*Stats, error) {
	all, err := s.medications.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	usage, err := s.usage.ListForDay(ctx, userID, startOfDay(now))
	if err != nil {
		return nil, err
	}
	entries := ProjectTodaySchedule(activeOnly(all), usage, now)
	stats := ComputeStats(all, entries, usage)
	return &stats, nil
}

func activeOnly(all []*Medication) []*Medication {
	var active []*Medication
	for _, m := range all {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}
