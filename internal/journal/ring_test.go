package journal

import (
	"context"
	"testing"

	"github.com/vital-check/vitalcheck-api/internal/vitals"
)

type fakeRingSource struct {
	latest map[Kind]Reading
	days   int
}

func (f *fakeRingSource) Latest(_ context.Context, _ string, kind Kind) (Reading, error) {
	r, ok := f.latest[kind]
	if !ok {
		return Reading{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeRingSource) DaysWithReadings(_ context.Context, _ string, _ int) (int, error) {
	return f.days, nil
}

func TestBuildRingInput_AllCategories(t *testing.T) {
	src := &fakeRingSource{
		days: 6,
		latest: map[Kind]Reading{
			KindBloodPressure: {Kind: KindBloodPressure, Systolic: 118, Diastolic: 76},
			KindGlucose:       {Kind: KindGlucose, Value: 92, Context: "fasting"},
			KindOxygen:        {Kind: KindOxygen, Value: 97},
			KindHeartRate:     {Kind: KindHeartRate, Value: 72},
		},
	}
	in, err := BuildRingInput(context.Background(), src, "u1")
	if err != nil {
		t.Fatalf("BuildRingInput: %v", err)
	}
	if in.TrackedCount != 4 || in.InRangeCount != 4 {
		t.Fatalf("tracked=%d inRange=%d, want 4/4", in.TrackedCount, in.InRangeCount)
	}
	if in.BloodPressure == nil || *in.BloodPressure != vitals.BPNormal {
		t.Fatalf("bp category = %v", in.BloodPressure)
	}
	if in.Glucose == nil || *in.Glucose != vitals.GlucoseNormal {
		t.Fatalf("glucose category = %v", in.Glucose)
	}

	ring := vitals.ComputeRing(in)
	if ring.Total != 100 {
		t.Fatalf("ring total = %d, want 100", ring.Total)
	}
}

func TestBuildRingInput_NoData(t *testing.T) {
	src := &fakeRingSource{latest: map[Kind]Reading{}}
	in, err := BuildRingInput(context.Background(), src, "u1")
	if err != nil {
		t.Fatalf("BuildRingInput: %v", err)
	}
	if in.TrackedCount != 0 || in.BloodPressure != nil || in.Glucose != nil {
		t.Fatalf("expected empty input, got %+v", in)
	}
	if got := vitals.ComputeRing(in).Total; got != 0 {
		t.Fatalf("ring total = %d, want 0", got)
	}
}

func TestBuildRingInput_OutOfRangeReadings(t *testing.T) {
	src := &fakeRingSource{
		days: 2,
		latest: map[Kind]Reading{
			KindBloodPressure: {Kind: KindBloodPressure, Systolic: 150, Diastolic: 95},
			KindHeartRate:     {Kind: KindHeartRate, Value: 120},
		},
	}
	in, err := BuildRingInput(context.Background(), src, "u1")
	if err != nil {
		t.Fatalf("BuildRingInput: %v", err)
	}
	if in.TrackedCount != 2 || in.InRangeCount != 0 {
		t.Fatalf("tracked=%d inRange=%d, want 2/0", in.TrackedCount, in.InRangeCount)
	}
	if *in.BloodPressure != vitals.BPStage2 {
		t.Fatalf("bp category = %q", *in.BloodPressure)
	}
}

func TestReadingValidate(t *testing.T) {
	cases := []struct {
		name string
		r    Reading
		ok   bool
	}{
		{"bp ok", Reading{Kind: KindBloodPressure, Systolic: 120, Diastolic: 80}, true},
		{"bp missing diastolic", Reading{Kind: KindBloodPressure, Systolic: 120}, false},
		{"glucose ok", Reading{Kind: KindGlucose, Value: 95}, true},
		{"weight zero", Reading{Kind: KindWeight}, false},
		{"unknown kind", Reading{Kind: "steps", Value: 100}, false},
	}
	for _, c := range cases {
		err := c.r.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}
