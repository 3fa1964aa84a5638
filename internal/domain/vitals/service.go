package vitals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	vitals VitalRepository
}

func NewService(repo VitalRepository) *Service {
	return &Service{vitals: repo}
}

var validVitalTypes = map[string]bool{
	TypeBloodPressure:    true,
	TypeHeartRate:        true,
	TypeGlucose:          true,
	TypeWeight:           true,
	TypeTemperature:      true,
	TypeOxygenSaturation: true,
}

// defaultUnits fills Unit when the client omits it.
var defaultUnits = map[string]string{
	TypeBloodPressure:    "mmHg",
	TypeHeartRate:        "bpm",
	TypeGlucose:          "mg/dL",
	TypeWeight:           "kg",
	TypeTemperature:      "C",
	TypeOxygenSaturation: "%",
}

func (s *Service) RecordVital(ctx context.Context, v *VitalReading) error {
	if v.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if !validVitalTypes[v.Type] {
		return fmt.Errorf("invalid vital type: %s", v.Type)
	}
	if v.Type == TypeBloodPressure {
		if v.Systolic == nil || v.Diastolic == nil {
			return fmt.Errorf("blood pressure requires systolic and diastolic")
		}
		v.Value = nil
	} else {
		if v.Value == nil {
			return fmt.Errorf("value is required for %s", v.Type)
		}
		v.Systolic, v.Diastolic = nil, nil
	}
	if v.Unit == "" {
		v.Unit = defaultUnits[v.Type]
	}
	if v.RecordedAt.IsZero() {
		v.RecordedAt = time.Now()
	}
	return s.vitals.Create(ctx, v)
}

func (s *Service) GetVital(ctx context.Context, id uuid.UUID) (*VitalReading, error) {
	return s.vitals.GetByID(ctx, id)
}

func (s *Service) ListVitals(ctx context.Context, userID uuid.UUID, vitalType string, limit, offset int) ([]*VitalReading, int, error) {
	if vitalType != "" && !validVitalTypes[vitalType] {
		return nil, 0, fmt.Errorf("invalid vital type: %s", vitalType)
	}
	return s.vitals.ListByUser(ctx, userID, vitalType, limit, offset)
}

func (s *Service) LatestByType(ctx context.Context, userID uuid.UUID) ([]*VitalReading, error) {
	return s.vitals.LatestByType(ctx, userID)
}

func (s *Service) DeleteVital(ctx context.Context, id uuid.UUID) error {
	return s.vitals.Delete(ctx, id)
}
