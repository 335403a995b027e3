package trace

import (
	"testing"
)

func TestSimulationTrace_RecordLaneChange_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a lane-change record is recorded
	st.RecordLaneChange(LaneChangeRecord{
		Step:       3,
		Car:        7,
		From:       0,
		To:         1,
		Position:   12,
		Velocity:   2,
		SameFront:  1,
		OtherFront: 8,
		OtherBack:  9,
	})

	// THEN the trace contains one lane-change record with correct data
	if len(st.LaneChanges) != 1 {
		t.Fatalf("expected 1 lane change, got %d", len(st.LaneChanges))
	}
	if st.LaneChanges[0].Car != 7 {
		t.Errorf("expected car 7, got %d", st.LaneChanges[0].Car)
	}
	if st.LaneChanges[0].To != 1 {
		t.Errorf("expected target lane 1, got %d", st.LaneChanges[0].To)
	}
}

func TestSimulationTrace_RecordStep_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for steps
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelSteps})

	// WHEN a step record is recorded
	st.RecordStep(StepRecord{Step: 0, LaneChanges: 2, MeanVelocity: 1.5, Flow: 0.25})

	// THEN the trace contains one step record with correct data
	if len(st.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(st.Steps))
	}
	if st.Steps[0].LaneChanges != 2 {
		t.Errorf("expected 2 lane changes, got %d", st.Steps[0].LaneChanges)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelSteps})

	// WHEN multiple records are added
	st.RecordLaneChange(LaneChangeRecord{Step: 0, Car: 4})
	st.RecordLaneChange(LaneChangeRecord{Step: 0, Car: 1})
	st.RecordStep(StepRecord{Step: 0, LaneChanges: 2})

	// THEN order is preserved
	if len(st.LaneChanges) != 2 {
		t.Fatalf("expected 2 lane changes, got %d", len(st.LaneChanges))
	}
	if st.LaneChanges[0].Car != 4 || st.LaneChanges[1].Car != 1 {
		t.Error("lane change order not preserved")
	}
	if len(st.Steps) != 1 || st.Steps[0].LaneChanges != 2 {
		t.Error("step record mismatch")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"steps", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
