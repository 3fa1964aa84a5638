package vitals

import (
	"time"

	"github.com/google/uuid"
)

// VitalReading maps to the vital_reading table. Blood pressure readings use
// the systolic/diastolic pair; every other type uses the single value field.
type VitalReading struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Type       string    `db:"type" json:"type"`
	Systolic   *int      `db:"systolic" json:"systolic,omitempty"`
	Diastolic  *int      `db:"diastolic" json:"diastolic,omitempty"`
	Value      *float64  `db:"value" json:"value,omitempty"`
	Unit       string    `db:"unit" json:"unit"`
	Note       *string   `db:"note" json:"note,omitempty"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

const (
	TypeBloodPressure    = "blood_pressure"
	TypeHeartRate        = "heart_rate"
	TypeGlucose          = "glucose"
	TypeWeight           = "weight"
	TypeTemperature      = "temperature"
	TypeOxygenSaturation = "oxygen_saturation"
)
