// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/H-Niyazi/Double-Lane-Traffic/sim/trace"
)

// Observer receives the road after every completed step. step is the 0-based
// index of the step that just finished. Observers must not retain road.
type Observer interface {
	OnStep(step int, road *Road) error
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(step int, road *Road) error

// OnStep calls f(step, road).
func (f ObserverFunc) OnStep(step int, road *Road) error { return f(step, road) }

// Simulator owns the road, the random streams and the per-run bookkeeping.
// It is single-threaded: only the optional parallel neighbor resolver spawns
// goroutines, and it joins them before returning.
type Simulator struct {
	cfg  Config
	road *Road
	rng  *PartitionedRNG
	// StepCount is the number of completed steps since placement.
	StepCount int
	Metrics   *Metrics
	// Trace is nil when the configured trace level is none.
	Trace      *trace.SimulationTrace
	traceLevel trace.TraceLevel
	observers  []Observer
}

// NewSimulator validates cfg, seeds the random streams once and places the
// cars at random. Configuration errors are returned as *ConfigError.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.LaneChangePolicy = cfg.Policy()
	sim := &Simulator{
		cfg:        cfg,
		rng:        NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		traceLevel: cfg.traceLevel(),
		observers:  make([]Observer, 0),
	}
	if err := sim.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing road: %w", err)
	}
	return sim, nil
}

// Config returns the validated configuration of this run.
func (sim *Simulator) Config() Config { return sim.cfg }

// Road returns the live road. Callers must treat it as read-only.
func (sim *Simulator) Road() *Road { return sim.road }

// AddObserver registers o to be called after every step of Run.
func (sim *Simulator) AddObserver(o Observer) { sim.observers = append(sim.observers, o) }

// newTrace returns a trace collector for level, or nil when tracing is off.
func newTrace(level trace.TraceLevel) *trace.SimulationTrace {
	if level == trace.TraceLevelNone {
		return nil
	}
	return trace.NewSimulationTrace(trace.TraceConfig{Level: level})
}

// resolve recomputes all gaps, in parallel when ResolverWorkers > 1.
func (sim *Simulator) resolve() error {
	if sim.cfg.ResolverWorkers > 1 {
		return ResolveNeighborsParallel(sim.road, sim.cfg.ResolverWorkers)
	}
	return ResolveNeighbors(sim.road)
}

// Step runs one full time step: lane change, velocity update, advance, then
// verifies the road invariants. A step either completes or returns an error;
// on error the run must be abandoned.
func (sim *Simulator) Step() error {
	changes, err := sim.ChangeLanes()
	if err != nil {
		return sim.stepError("lane change", err)
	}
	sim.UpdateVelocities()
	if err := sim.Advance(); err != nil {
		return sim.stepError("advance", err)
	}
	if err := sim.road.CheckInvariants(sim.cfg.VMax); err != nil {
		return sim.stepError("invariant check", err)
	}

	sm := sim.Metrics.Observe(sim.StepCount, sim.road, changes)
	if sim.Trace != nil && sim.traceLevel == trace.TraceLevelSteps {
		sim.Trace.RecordStep(trace.StepRecord{
			Step:         sim.StepCount,
			LaneChanges:  changes,
			MeanVelocity: sm.MeanVelocity,
			Flow:         sm.Flow,
			Stopped:      sm.Stopped,
		})
	}
	logrus.Debugf("[step %05d] lane changes=%d, mean v=%.2f, flow=%.3f, stopped=%d",
		sim.StepCount, changes, sm.MeanVelocity, sm.Flow, sm.Stopped)
	sim.StepCount++
	return nil
}

// stepError stamps invariant violations with the current step.
func (sim *Simulator) stepError(phase string, err error) error {
	var inv *InvariantError
	if errors.As(err, &inv) {
		inv.Step = sim.StepCount
	}
	return fmt.Errorf("%s: %w", phase, err)
}

// Run steps the simulation until Config.Steps steps have completed, notifying
// observers after each one. It stops at the first error.
func (sim *Simulator) Run() error {
	logrus.Infof("Starting simulation: %d cars on %d cells, vmax=%d, decel=%.2f, change=%.2f, policy=%s, steps=%d",
		sim.cfg.NumCars, sim.cfg.RoadLength, sim.cfg.VMax, sim.cfg.DecelProb, sim.cfg.ChangeProb,
		sim.cfg.LaneChangePolicy, sim.cfg.Steps)

	for sim.StepCount < sim.cfg.Steps {
		step := sim.StepCount
		if err := sim.Step(); err != nil {
			return err
		}
		for _, o := range sim.observers {
			if err := o.OnStep(step, sim.road); err != nil {
				return fmt.Errorf("observer at step %d: %w", step, err)
			}
		}
	}

	logrus.Infof("[step %05d] Simulation ended", sim.StepCount)
	return nil
}
