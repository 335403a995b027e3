// Package trace provides decision-trace recording for lane-change analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// LaneChangeRecord captures a single accepted lane change, with the car's
// state as seen by the decision rule.
type LaneChangeRecord struct {
	Step       int
	Car        int
	From       int // lane before the change
	To         int // lane after the change
	Position   int
	Velocity   int
	SameFront  int // own-lane gap ahead that made the car want to leave
	OtherFront int // target-lane gap ahead
	OtherBack  int // target-lane gap behind
}

// StepRecord captures the aggregate outcome of one completed step.
type StepRecord struct {
	Step         int
	LaneChanges  int
	MeanVelocity float64
	Flow         float64 // cars crossing a cell per step, averaged over both lanes
	Stopped      int     // cars with velocity 0 after the step
}
