// Package testutil provides shared test infrastructure for the traffic simulator.
// It holds the golden scenario types and assertion helpers used across
// sim/ test packages. It does not import sim, so sim's internal tests can use it.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenScenarios represents the structure of testdata/goldenscenarios.json.
type GoldenScenarios struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenCar is the observable state of one car.
type GoldenCar struct {
	Lane     int `json:"lane"`
	Position int `json:"position"`
	Velocity int `json:"velocity"`
}

// GoldenScenario is a fully deterministic run: explicit placement and
// probabilities of 0 or 1 only, so the outcome is independent of the seed.
type GoldenScenario struct {
	Name        string      `json:"name"`
	RoadLength  int         `json:"road_length"`
	VMax        int         `json:"vmax"`
	DecelProb   float64     `json:"decel_prob"`
	ChangeProb  float64     `json:"change_prob"`
	Policy      string      `json:"lane_change_policy"`
	Steps       int         `json:"steps"`
	Initial     []GoldenCar `json:"initial"`
	Expected    []GoldenCar `json:"expected"`
	LaneChanges int         `json:"lane_changes"`
}

// LoadGoldenScenarios loads the golden scenarios from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenScenarios(t *testing.T) *GoldenScenarios {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldenscenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden scenarios: %v", err)
	}

	var dataset GoldenScenarios
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden scenarios: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
