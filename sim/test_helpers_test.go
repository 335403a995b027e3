package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// deterministicConfig returns a config with no randomness in the step rules.
func deterministicConfig(roadLength, vmax, cars int) Config {
	cfg := DefaultConfig()
	cfg.RoadLength = roadLength
	cfg.VMax = vmax
	cfg.NumCars = cars
	cfg.DecelProb = 0
	cfg.ChangeProb = 0
	cfg.Steps = 1
	cfg.BlocksShown = roadLength
	return cfg
}

// newPlacedSimulator builds a simulator and replaces its random layout with cars.
func newPlacedSimulator(t *testing.T, cfg Config, cars []Car) *Simulator {
	t.Helper()
	cfg.NumCars = len(cars)
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	require.NoError(t, s.PlaceCars(cars))
	return s
}

// requireSettled asserts the road invariants hold.
func requireSettled(t *testing.T, s *Simulator) {
	t.Helper()
	require.NoError(t, s.Road().CheckInvariants(s.Config().VMax))
}
