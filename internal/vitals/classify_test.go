package vitals

import "testing"

func TestClassifyBloodPressure(t *testing.T) {
	cases := []struct {
		sys, dia int
		want     BPCategory
	}{
		{110, 70, BPNormal},
		{85, 70, BPLow},
		{110, 55, BPLow},
		{125, 75, BPElevated},
		{132, 70, BPStage1},
		{110, 85, BPStage1}, // diastolic alone can escalate
		{145, 85, BPStage2},
		{120, 95, BPStage2},
		{185, 80, BPCrisis},
		{140, 125, BPCrisis},
		{120, 80, BPStage1},  // boundary: 80 diastolic is stage 1
		{140, 90, BPStage2},  // boundary
	}
	for _, c := range cases {
		if got := ClassifyBloodPressure(c.sys, c.dia); got != c.want {
			t.Errorf("ClassifyBloodPressure(%d,%d) = %q, want %q", c.sys, c.dia, got, c.want)
		}
	}
}

func TestClassifyGlucose(t *testing.T) {
	cases := []struct {
		mgdl float64
		ctx  GlucoseContext
		want GlucoseCategory
	}{
		{65, GlucoseFasting, GlucoseLow},
		{90, GlucoseFasting, GlucoseNormal},
		{100, GlucoseFasting, GlucosePrediabetes}, // boundary
		{126, GlucoseFasting, GlucoseDiabetes},    // boundary
		{120, GlucosePostMeal, GlucoseNormal},
		{140, GlucosePostMeal, GlucosePrediabetes},
		{200, GlucoseRandom, GlucoseDiabetes},
		{150, "", GlucosePrediabetes}, // unknown context uses random bands
	}
	for _, c := range cases {
		if got := ClassifyGlucose(c.mgdl, c.ctx); got != c.want {
			t.Errorf("ClassifyGlucose(%v,%q) = %q, want %q", c.mgdl, c.ctx, got, c.want)
		}
	}
}

func TestClassifyOxygen(t *testing.T) {
	if got := ClassifyOxygen(97); got != OxygenNormal {
		t.Errorf("97%% = %q", got)
	}
	if got := ClassifyOxygen(92); got != OxygenConcerning {
		t.Errorf("92%% = %q", got)
	}
	if got := ClassifyOxygen(88); got != OxygenLow {
		t.Errorf("88%% = %q", got)
	}
	if got := ClassifyOxygen(95); got != OxygenNormal { // boundary
		t.Errorf("95%% = %q", got)
	}
}

func TestComputeRing_AllHealthy(t *testing.T) {
	bp := BPNormal
	gl := GlucoseNormal
	s := ComputeRing(RingInput{
		DaysWithReadingsLast7: 6,
		InRangeCount:          4,
		TrackedCount:          4,
		BloodPressure:         &bp,
		Glucose:               &gl,
	})
	if s.Total != 100 {
		t.Fatalf("total = %d, want 100", s.Total)
	}
	if s.Category != "excellent" {
		t.Fatalf("category = %q, want excellent", s.Category)
	}
}

func TestComputeRing_EmptyData(t *testing.T) {
	s := ComputeRing(RingInput{})
	if s.Total != 0 {
		t.Fatalf("total = %d, want 0", s.Total)
	}
	if s.Category != "needs_attention" {
		t.Fatalf("category = %q, want needs_attention", s.Category)
	}
}

func TestComputeRing_MissingCategoryContributesZero(t *testing.T) {
	gl := GlucoseNormal
	s := ComputeRing(RingInput{
		DaysWithReadingsLast7: 3,
		InRangeCount:          1,
		TrackedCount:          2,
		Glucose:               &gl,
	})
	// consistency 20 + in-range 15 + bp 0 + glucose 20
	if s.BPScore != 0 {
		t.Fatalf("bp score = %d, want 0", s.BPScore)
	}
	if s.Total != 55 {
		t.Fatalf("total = %d, want 55", s.Total)
	}
	if s.Category != "fair" {
		t.Fatalf("category = %q, want fair", s.Category)
	}
}

func TestComputeRing_CappedAt100(t *testing.T) {
	bp := BPNormal
	gl := GlucoseNormal
	s := ComputeRing(RingInput{
		DaysWithReadingsLast7: 7,
		InRangeCount:          9, // clamped to tracked
		TrackedCount:          4,
		BloodPressure:         &bp,
		Glucose:               &gl,
	})
	if s.Total != 100 {
		t.Fatalf("total = %d, want 100", s.Total)
	}
}
