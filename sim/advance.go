package sim

// Advance moves every car forward by its velocity around the circular road,
// then resolves neighbors once for the whole population.
func (sim *Simulator) Advance() error {
	for i := range sim.road.cars {
		c := &sim.road.cars[i]
		c.Position = (c.Position + c.Velocity) % sim.road.length
	}
	return sim.resolve()
}
