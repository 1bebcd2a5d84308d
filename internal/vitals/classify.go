// Package vitals classifies raw health readings into named clinical
// categories and aggregates them into the overall health score ring.
package vitals

// BPCategory is a blood pressure stage per the common AHA-style bands.
type BPCategory string

const (
	BPLow      BPCategory = "low"
	BPNormal   BPCategory = "normal"
	BPElevated BPCategory = "elevated"
	BPStage1   BPCategory = "hypertension_stage_1"
	BPStage2   BPCategory = "hypertension_stage_2"
	BPCrisis   BPCategory = "hypertensive_crisis"
)

// ClassifyBloodPressure maps a systolic/diastolic pair (mmHg) to a stage.
// The more severe of the two axes wins.
func ClassifyBloodPressure(systolic, diastolic int) BPCategory {
	switch {
	case systolic > 180 || diastolic > 120:
		return BPCrisis
	case systolic >= 140 || diastolic >= 90:
		return BPStage2
	case systolic >= 130 || diastolic >= 80:
		return BPStage1
	case systolic >= 120:
		return BPElevated
	case systolic < 90 || diastolic < 60:
		return BPLow
	default:
		return BPNormal
	}
}

// GlucoseContext describes when a glucose reading was taken; the normal
// bands shift with it.
type GlucoseContext string

const (
	GlucoseFasting  GlucoseContext = "fasting"
	GlucosePostMeal GlucoseContext = "post_meal"
	GlucoseRandom   GlucoseContext = "random"
)

// GlucoseCategory is a blood glucose band.
type GlucoseCategory string

const (
	GlucoseLow         GlucoseCategory = "low"
	GlucoseNormal      GlucoseCategory = "normal"
	GlucosePrediabetes GlucoseCategory = "prediabetes"
	GlucoseDiabetes    GlucoseCategory = "diabetes"
)

// ClassifyGlucose maps a reading in mg/dL to a band for the given context.
// An unknown context is treated as random.
func ClassifyGlucose(mgdl float64, ctx GlucoseContext) GlucoseCategory {
	if mgdl < 70 {
		return GlucoseLow
	}
	switch ctx {
	case GlucoseFasting:
		switch {
		case mgdl < 100:
			return GlucoseNormal
		case mgdl < 126:
			return GlucosePrediabetes
		default:
			return GlucoseDiabetes
		}
	default: // post-meal and random share bands
		switch {
		case mgdl < 140:
			return GlucoseNormal
		case mgdl < 200:
			return GlucosePrediabetes
		default:
			return GlucoseDiabetes
		}
	}
}

// OxygenCategory is a blood oxygen saturation band.
type OxygenCategory string

const (
	OxygenNormal     OxygenCategory = "normal"
	OxygenConcerning OxygenCategory = "concerning"
	OxygenLow        OxygenCategory = "low"
)

// ClassifyOxygen maps an SpO2 percentage to a band.
func ClassifyOxygen(spo2 float64) OxygenCategory {
	switch {
	case spo2 >= 95:
		return OxygenNormal
	case spo2 >= 90:
		return OxygenConcerning
	default:
		return OxygenLow
	}
}
