package sim

// UpdateVelocities applies the three cellular-automaton rules to every car:
//  1. acceleration: v = v+1 if v < vmax
//  2. collision avoidance: v = min(v, same-lane front gap)
//  3. random slowdown: v = v-1 with probability decel_prob if v > 0
//
// Cars are independent within this phase. One deceleration draw is taken per
// car per step.
func (sim *Simulator) UpdateVelocities() {
	rng := sim.rng.ForSubsystem(SubsystemDeceleration)
	for i := range sim.road.cars {
		c := &sim.road.cars[i]
		if c.Velocity < sim.cfg.VMax {
			c.Velocity++
		}
		if c.Velocity > c.Gaps.SameFront {
			c.Velocity = c.Gaps.SameFront
		}
		u := rng.Float64()
		if c.Velocity > 0 && u < sim.cfg.DecelProb {
			c.Velocity--
		}
	}
}
