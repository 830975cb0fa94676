// Package testutil provides shared test infrastructure for packages built on
// sim/streams: registry setup and float assertions.
package testutil

import (
	"math"
	"testing"

	"github.com/agent-sim/agent-sim/sim/streams"
)

// InitializedRegistry returns a registry initialized with seed.
func InitializedRegistry(t *testing.T, cfg streams.Config, slots streams.SlotTable, seed int64) *streams.Registry {
	t.Helper()
	reg := streams.NewRegistry(cfg, slots)
	if err := reg.Initialize(seed); err != nil {
		t.Fatalf("Failed to initialize registry: %v", err)
	}
	return reg
}

// AdvancedStream creates stream name on reg and advances the whole registry to ti.
func AdvancedStream(t *testing.T, reg *streams.Registry, name string, ti int) streams.RandomStream {
	t.Helper()
	s, err := reg.CreateStream(name)
	if err != nil {
		t.Fatalf("Failed to create stream %q: %v", name, err)
	}
	if err := reg.Advance(ti); err != nil {
		t.Fatalf("Failed to advance registry to ti=%d: %v", ti, err)
	}
	return s
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
