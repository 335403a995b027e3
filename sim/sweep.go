package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DiagramPoint is one sample of the fundamental diagram.
type DiagramPoint struct {
	NumCars      int
	Density      float64 // cars per cell over both lanes
	Flow         float64 // mean flow after warm-up
	FlowStdDev   float64 // step-to-step spread of the flow after warm-up
	MeanVelocity float64 // mean velocity after warm-up
	LaneChanges  int
}

// FundamentalDiagram runs base once per car count and measures the flow and
// mean velocity over the steps at or after warmup. Every run uses base.Seed,
// so the sweep is reproducible. Each count must form a valid Config.
func FundamentalDiagram(base Config, carCounts []int, warmup int) ([]DiagramPoint, error) {
	if warmup < 0 || warmup >= max(base.Steps, 1) {
		return nil, configErrorf("warmup", "must be in [0, steps), got %d with %d steps", warmup, base.Steps)
	}
	points := make([]DiagramPoint, 0, len(carCounts))
	for _, n := range carCounts {
		cfg := base
		cfg.NumCars = n
		cfg.TraceLevel = ""
		s, err := NewSimulator(cfg)
		if err != nil {
			return nil, fmt.Errorf("sweep at %d cars: %w", n, err)
		}
		if err := s.Run(); err != nil {
			return nil, fmt.Errorf("sweep at %d cars: %w", n, err)
		}
		p := DiagramPoint{
			NumCars:      n,
			Density:      cfg.Density(),
			Flow:         s.Metrics.MeanFlow(warmup),
			FlowStdDev:   s.Metrics.FlowStdDev(warmup),
			MeanVelocity: s.Metrics.MeanVelocity(warmup),
			LaneChanges:  s.Metrics.TotalLaneChanges,
		}
		logrus.Debugf("sweep: cars=%d density=%.3f flow=%.3f v=%.3f", n, p.Density, p.Flow, p.MeanVelocity)
		points = append(points, p)
	}
	return points, nil
}

// CarCounts returns the even car counts from lo to hi inclusive in increments
// of step, clamped to what fits on a road of roadLength cells.
func CarCounts(lo, hi, step, roadLength int) []int {
	if step <= 0 {
		step = 2
	}
	lo = max(lo, 2)
	hi = min(hi, 2*roadLength)
	counts := make([]int, 0)
	for n := lo; n <= hi; n += step {
		if n%2 == 0 {
			counts = append(counts, n)
		}
	}
	return counts
}
