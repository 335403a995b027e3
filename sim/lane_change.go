package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/H-Niyazi/Double-Lane-Traffic/sim/trace"
)

// wantsLaneChange applies the gap-driven incentive and safety rule: the car is
// blocked within its look-ahead of v+1 cells, the other lane has more room than
// that ahead, and more than vmax empty cells behind.
func wantsLaneChange(c Car, vmax int) bool {
	lookAhead := c.Velocity + 1
	return c.Gaps.SameFront < lookAhead &&
		c.Gaps.OtherFront > lookAhead &&
		c.Gaps.OtherBack > vmax
}

// ChangeLanes runs the lane-change phase of one step under the configured
// policy and returns the number of cars that switched lanes. Every car takes
// exactly one lane-change draw per step, whether or not its gaps qualify.
func (sim *Simulator) ChangeLanes() (int, error) {
	if sim.cfg.Policy() == LaneChangeSimultaneous {
		return sim.changeLanesSimultaneous()
	}
	return sim.changeLanesSequential()
}

// changeLanesSequential evaluates cars in index order; each accepted change
// re-resolves all neighbors before the next car decides.
func (sim *Simulator) changeLanesSequential() (int, error) {
	rng := sim.rng.ForSubsystem(SubsystemLaneChange)
	changes := 0
	for i := range sim.road.cars {
		u := rng.Float64()
		c := sim.road.cars[i]
		if !wantsLaneChange(c, sim.cfg.VMax) || u >= sim.cfg.ChangeProb {
			continue
		}
		sim.road.cars[i].Lane = c.Lane.Other()
		sim.recordLaneChange(i, c)
		changes++
		if err := sim.resolve(); err != nil {
			return changes, err
		}
	}
	return changes, nil
}

// changeLanesSimultaneous decides every car from the same gap snapshot, then
// applies the accepted changes and resolves neighbors once. A mover's target
// cell is empty in the snapshot, and any car that could also enter it would have
// to sit on the mover's own cell, so accepted changes never collide.
func (sim *Simulator) changeLanesSimultaneous() (int, error) {
	rng := sim.rng.ForSubsystem(SubsystemLaneChange)
	movers := make([]int, 0)
	for i, c := range sim.road.cars {
		u := rng.Float64()
		if wantsLaneChange(c, sim.cfg.VMax) && u < sim.cfg.ChangeProb {
			movers = append(movers, i)
		}
	}
	if len(movers) == 0 {
		return 0, nil
	}
	for _, i := range movers {
		c := sim.road.cars[i]
		sim.road.cars[i].Lane = c.Lane.Other()
		sim.recordLaneChange(i, c)
	}
	return len(movers), sim.resolve()
}

// recordLaneChange logs and traces the move of car i, given its state before the change.
func (sim *Simulator) recordLaneChange(i int, before Car) {
	logrus.Tracef("[step %05d] car %d: %s -> %s at cell %d (v=%d, gaps=%+v)",
		sim.StepCount, i, before.Lane, before.Lane.Other(), before.Position, before.Velocity, before.Gaps)
	if sim.Trace == nil {
		return
	}
	sim.Trace.RecordLaneChange(trace.LaneChangeRecord{
		Step:       sim.StepCount,
		Car:        i,
		From:       int(before.Lane),
		To:         int(before.Lane.Other()),
		Position:   before.Position,
		Velocity:   before.Velocity,
		SameFront:  before.Gaps.SameFront,
		OtherFront: before.Gaps.OtherFront,
		OtherBack:  before.Gaps.OtherBack,
	})
}
