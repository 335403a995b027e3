package sim

import (
	"fmt"
	"math"

	"github.com/H-Niyazi/Double-Lane-Traffic/sim/trace"
)

// LaneChangePolicy selects how lane-change decisions within one step observe each other.
type LaneChangePolicy string

const (
	// LaneChangeSequential evaluates cars in index order and re-resolves neighbors
	// after every accepted change, so later cars see earlier moves.
	LaneChangeSequential LaneChangePolicy = "sequential"
	// LaneChangeSimultaneous evaluates every car against the same snapshot and
	// applies all accepted changes together.
	LaneChangeSimultaneous LaneChangePolicy = "simultaneous"
)

var validLaneChangePolicies = map[LaneChangePolicy]bool{
	"":                     true, // empty defaults to sequential
	LaneChangeSequential:   true,
	LaneChangeSimultaneous: true,
}

// IsValidLaneChangePolicy returns true if name is a recognized lane-change policy.
func IsValidLaneChangePolicy(name string) bool {
	return validLaneChangePolicies[LaneChangePolicy(name)]
}

// Reference parameters of the original two-lane model.
const (
	DefaultRoadLength  = 40
	DefaultVMax        = 5
	DefaultNumCars     = 20
	DefaultDecelProb   = 0.1
	DefaultChangeProb  = 0.99
	DefaultSteps       = 5
	DefaultBlocksShown = 40
	DefaultSeed        = 42
)

// Config groups every parameter of a run. It is passed by value into
// NewSimulator; the simulator never reads process-wide state.
type Config struct {
	RoadLength       int              `yaml:"road_length"`                  // cells per lane (> 0)
	VMax             int              `yaml:"vmax"`                         // maximum velocity in cells/step (>= 0)
	NumCars          int              `yaml:"cars"`                         // total cars, even, split equally across lanes
	DecelProb        float64          `yaml:"decel_prob"`                   // probability of a random slowdown
	ChangeProb       float64          `yaml:"change_prob"`                  // probability of taking a feasible lane change
	Steps            int              `yaml:"steps"`                        // number of simulated steps
	BlocksShown      int              `yaml:"blocks_shown"`                 // cells rendered per lane (display only)
	Seed             int64            `yaml:"seed"`                         // master seed for the PartitionedRNG
	LaneChangePolicy LaneChangePolicy `yaml:"lane_change_policy,omitempty"` // "sequential" (default) or "simultaneous"
	ResolverWorkers  int              `yaml:"resolver_workers,omitempty"`   // > 1 resolves neighbors in parallel
	TraceLevel       string           `yaml:"trace_level,omitempty"`        // "none" (default), "decisions" or "steps"
}

// DefaultConfig returns the reference configuration: a 40-cell road,
// vmax 5, 20 cars, 10% slowdown and 99% lane-change probability.
func DefaultConfig() Config {
	return Config{
		RoadLength:       DefaultRoadLength,
		VMax:             DefaultVMax,
		NumCars:          DefaultNumCars,
		DecelProb:        DefaultDecelProb,
		ChangeProb:       DefaultChangeProb,
		Steps:            DefaultSteps,
		BlocksShown:      DefaultBlocksShown,
		Seed:             DefaultSeed,
		LaneChangePolicy: LaneChangeSequential,
	}
}

// Policy returns the effective lane-change policy.
func (c Config) Policy() LaneChangePolicy {
	if c.LaneChangePolicy == "" {
		return LaneChangeSequential
	}
	return c.LaneChangePolicy
}

func (c Config) traceLevel() trace.TraceLevel {
	if c.TraceLevel == "" {
		return trace.TraceLevelNone
	}
	return trace.TraceLevel(c.TraceLevel)
}

// CarsPerLane is the number of cars placed on each lane at initialization.
func (c Config) CarsPerLane() int {
	return c.NumCars / 2
}

// Density is the fraction of occupied cells over both lanes.
func (c Config) Density() float64 {
	if c.RoadLength <= 0 {
		return 0
	}
	return float64(c.NumCars) / float64(2*c.RoadLength)
}

// Validate checks every field and returns a *ConfigError for the first invalid one.
func (c Config) Validate() error {
	if c.RoadLength <= 0 {
		return configErrorf("road_length", "must be positive, got %d", c.RoadLength)
	}
	if c.VMax < 0 {
		return configErrorf("vmax", "must be non-negative, got %d", c.VMax)
	}
	if c.NumCars <= 0 {
		return configErrorf("cars", "must be positive, got %d", c.NumCars)
	}
	if c.NumCars%2 != 0 {
		return configErrorf("cars", "must be even so both lanes start with the same count, got %d", c.NumCars)
	}
	if c.CarsPerLane() > c.RoadLength {
		return configErrorf("cars", "%d cars per lane do not fit on a road of %d cells", c.CarsPerLane(), c.RoadLength)
	}
	if err := validateProbability("decel_prob", c.DecelProb); err != nil {
		return err
	}
	if err := validateProbability("change_prob", c.ChangeProb); err != nil {
		return err
	}
	if c.Steps < 0 {
		return configErrorf("steps", "must be non-negative, got %d", c.Steps)
	}
	if c.BlocksShown < 0 {
		return configErrorf("blocks_shown", "must be non-negative, got %d", c.BlocksShown)
	}
	if !validLaneChangePolicies[c.LaneChangePolicy] {
		return configErrorf("lane_change_policy", "unknown policy %q; valid: sequential, simultaneous", c.LaneChangePolicy)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return configErrorf("trace_level", "unknown level %q; valid: none, decisions, steps", c.TraceLevel)
	}
	if c.ResolverWorkers < 0 {
		return configErrorf("resolver_workers", "must be non-negative, got %d", c.ResolverWorkers)
	}
	return nil
}

func validateProbability(field string, p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return configErrorf(field, "must be a finite number, got %f", p)
	}
	if p < 0 || p > 1 {
		return configErrorf(field, "must be in [0, 1], got %f", p)
	}
	return nil
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
