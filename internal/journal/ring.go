package journal

import (
	"context"
	"errors"

	"github.com/vital-check/vitalcheck-api/internal/vitals"
)

// Resting heart rate band used for the in-range sub-score.
const (
	heartRateMin = 60
	heartRateMax = 100
)

// RingSource is the slice of Store the health score needs.
type RingSource interface {
	Latest(ctx context.Context, userID string, kind Kind) (Reading, error)
	DaysWithReadings(ctx context.Context, userID string, days int) (int, error)
}

// BuildRingInput gathers the latest reading per tracked category and the
// measurement cadence, classifying each into its band for the ring.
func BuildRingInput(ctx context.Context, src RingSource, userID string) (vitals.RingInput, error) {
	var in vitals.RingInput

	days, err := src.DaysWithReadings(ctx, userID, 7)
	if err != nil {
		return in, err
	}
	in.DaysWithReadingsLast7 = days

	track := func(inRange bool) {
		in.TrackedCount++
		if inRange {
			in.InRangeCount++
		}
	}

	if r, err := src.Latest(ctx, userID, KindBloodPressure); err == nil {
		cat := vitals.ClassifyBloodPressure(r.Systolic, r.Diastolic)
		in.BloodPressure = &cat
		track(cat == vitals.BPNormal)
	} else if !errors.Is(err, ErrNotFound) {
		return in, err
	}

	if r, err := src.Latest(ctx, userID, KindGlucose); err == nil {
		cat := vitals.ClassifyGlucose(r.Value, vitals.GlucoseContext(r.Context))
		in.Glucose = &cat
		track(cat == vitals.GlucoseNormal)
	} else if !errors.Is(err, ErrNotFound) {
		return in, err
	}

	if r, err := src.Latest(ctx, userID, KindOxygen); err == nil {
		track(vitals.ClassifyOxygen(r.Value) == vitals.OxygenNormal)
	} else if !errors.Is(err, ErrNotFound) {
		return in, err
	}

	if r, err := src.Latest(ctx, userID, KindHeartRate); err == nil {
		track(r.Value >= heartRateMin && r.Value <= heartRateMax)
	} else if !errors.Is(err, ErrNotFound) {
		return in, err
	}

	return in, nil
}
