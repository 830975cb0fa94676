package trace

// TraceLevel controls the verbosity of draw tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDraws captures every successful stream draw.
	TraceLevelDraws TraceLevel = "draws"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelDraws: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects draw records during a simulation run.
type SimulationTrace struct {
	Config TraceConfig
	Draws  []DrawRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Draws:  make([]DrawRecord, 0),
	}
}

// RecordDraw appends a draw record.
func (st *SimulationTrace) RecordDraw(record DrawRecord) {
	st.Draws = append(st.Draws, record)
}
