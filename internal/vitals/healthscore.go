package vitals

import (
	"github.com/vital-check/vitalcheck-api/internal/assessment"
)

// Sub-score caps for the health score ring. The total is an unweighted sum
// of the four, capped at 100; a missing category contributes 0.
const (
	maxConsistency = 30
	maxInRange     = 30
	maxBPScore     = 20
	maxGlucose     = 20
)

// RingInput is everything the ring needs, gathered by the caller from the
// journal: measurement cadence over the last week and the latest reading per
// tracked category. Nil pointers mean no data for that category.
type RingInput struct {
	DaysWithReadingsLast7 int
	InRangeCount          int // tracked categories whose latest reading is in its normal band
	TrackedCount          int // tracked categories with any reading at all
	BloodPressure         *BPCategory
	Glucose               *GlucoseCategory
}

// RingScore is the computed ring with its per-category breakdown.
type RingScore struct {
	Total       int             `json:"total"`
	Consistency int             `json:"consistency"`
	InRange     int             `json:"in_range"`
	BPScore     int             `json:"blood_pressure"`
	Glucose     int             `json:"glucose"`
	Category    assessment.Tier `json:"category"`
}

// RingTiers classifies the ring total; reuses the assessment threshold
// mechanism since it is the same ordered-band lookup.
var RingTiers = assessment.ThresholdTable{
	{MinScore: 85, Tier: "excellent"},
	{MinScore: 70, Tier: "good"},
	{MinScore: 50, Tier: "fair"},
	{MinScore: 0, Tier: "needs_attention"},
}

var bpScores = map[BPCategory]int{
	BPNormal:   20,
	BPElevated: 14,
	BPLow:      12,
	BPStage1:   10,
	BPStage2:   5,
	BPCrisis:   0,
}

var glucoseScores = map[GlucoseCategory]int{
	GlucoseNormal:      20,
	GlucosePrediabetes: 10,
	GlucoseLow:         8,
	GlucoseDiabetes:    4,
}

// ComputeRing computes the health score ring from journal-derived inputs.
func ComputeRing(in RingInput) RingScore {
	s := RingScore{
		Consistency: consistencyScore(in.DaysWithReadingsLast7),
		InRange:     inRangeScore(in.InRangeCount, in.TrackedCount),
	}
	if in.BloodPressure != nil {
		s.BPScore = bpScores[*in.BloodPressure]
	}
	if in.Glucose != nil {
		s.Glucose = glucoseScores[*in.Glucose]
	}
	s.Total = s.Consistency + s.InRange + s.BPScore + s.Glucose
	if s.Total > 100 {
		s.Total = 100
	}
	s.Category = assessment.Classify(s.Total, RingTiers)
	return s
}

// consistencyScore rewards measurement cadence: days (of the last 7) with at
// least one reading.
func consistencyScore(days int) int {
	switch {
	case days >= 5:
		return maxConsistency
	case days >= 3:
		return 20
	case days >= 1:
		return 10
	default:
		return 0
	}
}

// inRangeScore scales the share of tracked categories whose latest reading
// sits in its normal band.
func inRangeScore(inRange, tracked int) int {
	if tracked <= 0 {
		return 0
	}
	if inRange > tracked {
		inRange = tracked
	}
	return inRange * maxInRange / tracked
}
