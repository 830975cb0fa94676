package sim

import (
	"fmt"

	"github.com/agent-sim/agent-sim/sim/streams"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// NewStreamRegistry creates the stream registry of one run, initialized with the
// key as its base seed. Every run gets its own registry.
func NewStreamRegistry(key SimulationKey, cfg streams.Config, slots streams.SlotTable) (*streams.Registry, error) {
	reg := streams.NewRegistry(cfg, slots)
	if err := reg.Initialize(int64(key)); err != nil {
		return nil, fmt.Errorf("creating stream registry: %w", err)
	}
	return reg, nil
}
