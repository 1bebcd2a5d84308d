// Package journal stores self-recorded health readings: blood pressure,
// blood glucose, weight, blood oxygen and heart rate.
package journal

import (
	"context"
	"errors"
)

type Kind string

const (
	KindBloodPressure Kind = "blood_pressure"
	KindGlucose       Kind = "glucose"
	KindWeight        Kind = "weight"
	KindOxygen        Kind = "oxygen"
	KindHeartRate     Kind = "heart_rate"
)

// Source tags where a reading came from. Camera covers the finger
// measurement flow; the capture pipeline itself lives in the client.
type Source string

const (
	SourceManual Source = "manual"
	SourceCamera Source = "camera"
)

var (
	ErrNotFound = errors.New("reading not found")
	ErrInvalid  = errors.New("invalid reading")
)

// Reading is one journal entry. Blood pressure uses Systolic/Diastolic;
// every other kind uses Value (mg/dL, kg, %, bpm respectively). Context
// qualifies glucose readings (fasting/post_meal/random).
type Reading struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Kind      Kind    `json:"kind"`
	Systolic  int     `json:"systolic,omitempty"`
	Diastolic int     `json:"diastolic,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Context   string  `json:"context,omitempty"`
	Source    Source  `json:"source,omitempty"`
	Note      string  `json:"note,omitempty"`
	TakenAt   int64   `json:"taken_at"`
}

// Validate checks the fields required for the reading's kind.
func (r Reading) Validate() error {
	switch r.Kind {
	case KindBloodPressure:
		if r.Systolic <= 0 || r.Diastolic <= 0 {
			return ErrInvalid
		}
	case KindGlucose, KindWeight, KindOxygen, KindHeartRate:
		if r.Value <= 0 {
			return ErrInvalid
		}
	default:
		return ErrInvalid
	}
	return nil
}

// Store persists journal readings.
type Store interface {
	Add(ctx context.Context, r Reading) (Reading, error)
	List(ctx context.Context, userID string, kind Kind, limit int) ([]Reading, error)
	Latest(ctx context.Context, userID string, kind Kind) (Reading, error)
	Delete(ctx context.Context, id, userID string) error
	// DaysWithReadings counts distinct days with at least one reading in the
	// trailing window of the given length.
	DaysWithReadings(ctx context.Context, userID string, days int) (int, error)
}
