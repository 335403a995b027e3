package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every accepted lane change.
	TraceLevelDecisions TraceLevel = "decisions"
	// TraceLevelSteps captures lane changes plus one record per step.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	TraceLevelSteps:     true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a simulation.
type SimulationTrace struct {
	Config      TraceConfig
	LaneChanges []LaneChangeRecord
	Steps       []StepRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		LaneChanges: make([]LaneChangeRecord, 0),
		Steps:       make([]StepRecord, 0),
	}
}

// RecordLaneChange appends a lane-change record.
func (st *SimulationTrace) RecordLaneChange(record LaneChangeRecord) {
	st.LaneChanges = append(st.LaneChanges, record)
}

// RecordStep appends a step record.
func (st *SimulationTrace) RecordStep(record StepRecord) {
	st.Steps = append(st.Steps, record)
}
