// Tracks per-step and run-wide traffic statistics such as flow, mean
// velocity, stopped cars and lane changes.

package sim

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

// StepMetrics summarizes the road after one completed step.
type StepMetrics struct {
	Step         int
	MeanVelocity float64    // over all cars
	Flow         float64    // sum of velocities / (2 * road length)
	LaneFlow     [2]float64 // sum of velocities on the lane / road length
	LaneCounts   [2]int     // cars on each lane
	LaneChanges  int        // accepted lane changes during the step
	Stopped      int        // cars with velocity 0
}

// Metrics aggregates statistics about the simulation
// for final reporting.
type Metrics struct {
	RoadLength       int
	Steps            []StepMetrics
	TotalLaneChanges int
	PeakStopped      int // max number of simultaneously stopped cars
	// Headways holds the sorted front gaps of the last observed step.
	Headways []int
}

// NewMetrics creates an empty Metrics for a road of the given length.
func NewMetrics(roadLength int) *Metrics {
	return &Metrics{
		RoadLength: roadLength,
		Steps:      make([]StepMetrics, 0),
	}
}

// Observe records the state of road at the end of step and returns the
// recorded sample.
func (m *Metrics) Observe(step int, road *Road, laneChanges int) StepMetrics {
	sm := StepMetrics{Step: step, LaneChanges: laneChanges}
	velocitySum := 0
	var laneSum [2]int
	for _, c := range road.cars {
		velocitySum += c.Velocity
		laneSum[c.Lane] += c.Velocity
		sm.LaneCounts[c.Lane]++
		if c.Velocity == 0 {
			sm.Stopped++
		}
	}
	if n := len(road.cars); n > 0 {
		sm.MeanVelocity = float64(velocitySum) / float64(n)
	}
	if m.RoadLength > 0 {
		sm.Flow = float64(velocitySum) / float64(2*m.RoadLength)
		for _, l := range Lanes {
			sm.LaneFlow[l] = float64(laneSum[l]) / float64(m.RoadLength)
		}
	}

	m.Steps = append(m.Steps, sm)
	m.TotalLaneChanges += laneChanges
	m.PeakStopped = max(m.PeakStopped, sm.Stopped)
	m.Headways = sortedHeadways(road)
	return sm
}

// FlowSeries returns the per-step flow, in step order.
func (m *Metrics) FlowSeries() []float64 {
	out := make([]float64, len(m.Steps))
	for i, s := range m.Steps {
		out[i] = s.Flow
	}
	return out
}

// VelocitySeries returns the per-step mean velocity, in step order.
func (m *Metrics) VelocitySeries() []float64 {
	out := make([]float64, len(m.Steps))
	for i, s := range m.Steps {
		out[i] = s.MeanVelocity
	}
	return out
}

// MeanFlow averages the flow over steps recorded at or after from.
func (m *Metrics) MeanFlow(from int) float64 {
	return meanAfter(m.Steps, from, func(s StepMetrics) float64 { return s.Flow })
}

// MeanVelocity averages the mean velocity over steps recorded at or after from.
func (m *Metrics) MeanVelocity(from int) float64 {
	return meanAfter(m.Steps, from, func(s StepMetrics) float64 { return s.MeanVelocity })
}

// FlowStdDev is the sample standard deviation of the flow over steps recorded
// at or after from. Fewer than two samples yield 0.
func (m *Metrics) FlowStdDev(from int) float64 {
	flows := make([]float64, 0, len(m.Steps))
	for _, s := range m.Steps {
		if s.Step >= from {
			flows = append(flows, s.Flow)
		}
	}
	if len(flows) < 2 {
		return 0
	}
	return stat.StdDev(flows, nil)
}

func meanAfter(steps []StepMetrics, from int, value func(StepMetrics) float64) float64 {
	sum, n := 0.0, 0
	for _, s := range steps {
		if s.Step < from {
			continue
		}
		sum += value(s)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Print writes the aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Completed Steps      : %d\n", len(m.Steps))
	if len(m.Steps) > 0 {
		last := m.Steps[len(m.Steps)-1]
		fmt.Fprintf(w, "Mean Velocity        : %.3f cells/step\n", m.MeanVelocity(0))
		fmt.Fprintf(w, "Mean Flow            : %.3f cars/step/lane\n", m.MeanFlow(0))
		fmt.Fprintf(w, "Lane Changes         : %d\n", m.TotalLaneChanges)
		fmt.Fprintf(w, "Peak Stopped Cars    : %d\n", m.PeakStopped)
		fmt.Fprintf(w, "Final Lane Occupancy : %d / %d\n", last.LaneCounts[LaneLeft], last.LaneCounts[LaneRight])
		fmt.Fprintf(w, "Headway p10/p50/p90  : %.1f / %.1f / %.1f cells\n",
			CalculatePercentile(m.Headways, 10), CalculatePercentile(m.Headways, 50), CalculatePercentile(m.Headways, 90))
	}
}
