package cmd

import (
	"bytes"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/H-Niyazi/Double-Lane-Traffic/sim"
)

// ScenarioFile represents the full scenarios.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ScenarioFile struct {
	Version   string              `yaml:"version"`
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario is a named preset. Only the fields it sets override the base
// configuration; nil fields keep the base value.
type Scenario struct {
	Description      string   `yaml:"description"`
	RoadLength       *int     `yaml:"road_length"`
	VMax             *int     `yaml:"vmax"`
	NumCars          *int     `yaml:"cars"`
	DecelProb        *float64 `yaml:"decel_prob"`
	ChangeProb       *float64 `yaml:"change_prob"`
	Steps            *int     `yaml:"steps"`
	BlocksShown      *int     `yaml:"blocks_shown"`
	Seed             *int64   `yaml:"seed"`
	LaneChangePolicy *string  `yaml:"lane_change_policy"`
	ResolverWorkers  *int     `yaml:"resolver_workers"`
	TraceLevel       *string  `yaml:"trace_level"`
}

// Apply overwrites the fields of cfg that the scenario sets.
func (s Scenario) Apply(cfg *sim.Config) {
	setIf(&cfg.RoadLength, s.RoadLength)
	setIf(&cfg.VMax, s.VMax)
	setIf(&cfg.NumCars, s.NumCars)
	setIf(&cfg.DecelProb, s.DecelProb)
	setIf(&cfg.ChangeProb, s.ChangeProb)
	setIf(&cfg.Steps, s.Steps)
	setIf(&cfg.BlocksShown, s.BlocksShown)
	setIf(&cfg.Seed, s.Seed)
	setIf(&cfg.ResolverWorkers, s.ResolverWorkers)
	setIf(&cfg.TraceLevel, s.TraceLevel)
	if s.LaneChangePolicy != nil {
		cfg.LaneChangePolicy = sim.LaneChangePolicy(*s.LaneChangePolicy)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// LoadScenarios parses a scenarios file with strict field checking, so a
// misspelled key is an error rather than a silently ignored default.
func LoadScenarios(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenarios file %s", path)
	}
	var file ScenarioFile
	if err := decodeStrict(data, &file); err != nil {
		return nil, errors.Wrapf(err, "parsing scenarios file %s", path)
	}
	return &file, nil
}

// Lookup returns the scenario called name.
func (f *ScenarioFile) Lookup(name string) (Scenario, error) {
	sc, ok := f.Scenarios[name]
	if !ok {
		return Scenario{}, errors.Errorf("unknown scenario %q; available: %v", name, f.Names())
	}
	return sc, nil
}

// Names returns the scenario names in sorted order.
func (f *ScenarioFile) Names() []string {
	names := make([]string, 0, len(f.Scenarios))
	for name := range f.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadConfigFile decodes a YAML sim.Config on top of base. Keys absent from
// the file keep their base values; unknown keys are rejected.
func LoadConfigFile(path string, base sim.Config) (sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "reading config file %s", path)
	}
	cfg := base
	if err := decodeStrict(data, &cfg); err != nil {
		return base, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, nil
}

func decodeStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(out)
}
