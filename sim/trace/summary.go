package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalLaneChanges  int
	UniqueCars        int         // cars that changed lane at least once
	ChangesIntoLane   map[int]int // target lane → count of changes
	MaxChangesPerStep int
	BusiestStep       int // step with MaxChangesPerStep changes; -1 when there were none
	StepsRecorded     int
	MeanFlow          float64 // over recorded steps; 0 without step records
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ChangesIntoLane: make(map[int]int),
		BusiestStep:     -1,
	}
	if st == nil {
		return summary
	}

	summary.TotalLaneChanges = len(st.LaneChanges)
	cars := make(map[int]bool)
	perStep := make(map[int]int)
	for _, r := range st.LaneChanges {
		cars[r.Car] = true
		summary.ChangesIntoLane[r.To]++
		perStep[r.Step]++
	}
	summary.UniqueCars = len(cars)
	for step, n := range perStep {
		if n > summary.MaxChangesPerStep || (n == summary.MaxChangesPerStep && step < summary.BusiestStep) {
			summary.MaxChangesPerStep = n
			summary.BusiestStep = step
		}
	}

	summary.StepsRecorded = len(st.Steps)
	if len(st.Steps) > 0 {
		total := 0.0
		for _, s := range st.Steps {
			total += s.Flow
		}
		summary.MeanFlow = total / float64(len(st.Steps))
	}

	return summary
}
