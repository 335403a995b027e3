package sim

import "fmt"

// ConfigError reports an invalid configuration value. Runs fail with it before step 0.
type ConfigError struct {
	Field  string // yaml name of the offending field
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// InvariantKind names the road invariant a car violated.
type InvariantKind string

const (
	InvariantCollision InvariantKind = "collision" // two cars share a (lane, position) cell
	InvariantVelocity  InvariantKind = "velocity"  // velocity outside [0, vmax]
	InvariantPosition  InvariantKind = "position"  // position outside [0, road_length)
	InvariantLane      InvariantKind = "lane"      // lane tag other than 0 or 1
	InvariantGap       InvariantKind = "gap"       // cached gap outside its valid range
)

// InvariantError reports an internal defect detected in the road state.
// Step is -1 when the violation was found outside the step loop (placement).
type InvariantError struct {
	Step   int
	Car    int
	Kind   InvariantKind
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("invariant %s violated by car %d: %s", e.Kind, e.Car, e.Detail)
	}
	return fmt.Sprintf("step %d: invariant %s violated by car %d: %s", e.Step, e.Kind, e.Car, e.Detail)
}
