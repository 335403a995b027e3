package sim

import (
	"fmt"
	"math/rand"
)

// samplePositions draws k distinct cells from [0, length) without replacement
// using a partial Fisher-Yates shuffle.
func samplePositions(rng *rand.Rand, length, k int) []int {
	cells := make([]int, length)
	for i := range cells {
		cells[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(length-i)
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells[:k]
}

// initialVelocity draws uniformly from [1, vmax]; with vmax 0 every car starts at rest.
func initialVelocity(rng *rand.Rand, vmax int) int {
	if vmax == 0 {
		return 0
	}
	return rng.Intn(vmax) + 1
}

// Initialize places NumCars/2 cars on each lane at distinct random cells and
// gives each a random velocity in [1, vmax]. Car 2i starts on lane 0 and car
// 2i+1 on lane 1; the pairing carries no meaning after placement.
func (sim *Simulator) Initialize() error {
	rng := sim.rng.ForSubsystem(SubsystemPlacement)
	perLane := sim.cfg.CarsPerLane()
	if perLane > sim.cfg.RoadLength {
		return configErrorf("cars", "%d cars per lane do not fit on a road of %d cells", perLane, sim.cfg.RoadLength)
	}

	left := samplePositions(rng, sim.cfg.RoadLength, perLane)
	right := samplePositions(rng, sim.cfg.RoadLength, perLane)

	cars := make([]Car, 2*perLane)
	for i := 0; i < perLane; i++ {
		cars[2*i] = Car{Lane: LaneLeft, Position: left[i]}
		cars[2*i+1] = Car{Lane: LaneRight, Position: right[i]}
	}
	for i := range cars {
		cars[i].Velocity = initialVelocity(rng, sim.cfg.VMax)
	}
	return sim.PlaceCars(cars)
}

// PlaceCars replaces the road with an explicit layout, validates it and
// resolves neighbors. Lanes need not hold equal counts. The step counter,
// metrics and trace are reset.
func (sim *Simulator) PlaceCars(cars []Car) error {
	if len(cars) != sim.cfg.NumCars {
		return configErrorf("cars", "layout has %d cars, config expects %d", len(cars), sim.cfg.NumCars)
	}
	road := NewRoad(sim.cfg.RoadLength, cars)
	if err := road.checkCars(sim.cfg.VMax); err != nil {
		return fmt.Errorf("placing cars: %w", err)
	}
	sim.road = road
	if err := sim.resolve(); err != nil {
		return fmt.Errorf("placing cars: %w", err)
	}
	sim.StepCount = 0
	sim.Metrics = NewMetrics(sim.cfg.RoadLength)
	sim.Trace = newTrace(sim.traceLevel)
	return nil
}
