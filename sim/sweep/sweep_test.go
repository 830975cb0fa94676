package sweep

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-sim/agent-sim/sim"
	"github.com/agent-sim/agent-sim/sim/internal/testutil"
	"github.com/agent-sim/agent-sim/sim/streams"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func smallBase() sim.RunConfig {
	cfg := sim.DefaultRunConfig()
	cfg.Agents = 300
	cfg.Steps = 15
	return cfg
}

func TestPlan(t *testing.T) {
	sw := &Sweep{
		Base:        smallBase(),
		Seeds:       []int64{1, 2},
		Multipliers: []float64{1.5, 1, 2},
		Modes:       []streams.StreamMode{streams.ModeMultiStream, streams.ModeCentralized},
	}
	plan, err := sw.Plan()
	require.NoError(t, err)
	require.Len(t, plan, 2*2*3)

	// Baseline is always first and never duplicated.
	assert.Equal(t, Run{Mode: streams.ModeMultiStream, Seed: 1, Multiplier: 1}, plan[0])
	assert.Equal(t, 1.5, plan[1].Multiplier)
	assert.Equal(t, 2.0, plan[2].Multiplier)
	assert.Equal(t, streams.ModeCentralized, plan[6].Mode)
}

func TestPlan_Defaults(t *testing.T) {
	base := smallBase()
	base.Mode = "centralized"
	plan, err := (&Sweep{Base: base, Seeds: []int64{9}}).Plan()
	require.NoError(t, err)
	assert.Equal(t, []Run{{Mode: streams.ModeCentralized, Seed: 9, Multiplier: Baseline}}, plan)

	_, err = (&Sweep{Base: base}).Plan()
	assert.Error(t, err)
}

func TestRun_IsReproducibleAndOrdered(t *testing.T) {
	sw := &Sweep{
		Base:        smallBase(),
		Seeds:       []int64{1, 2, 3},
		Multipliers: []float64{2},
		Modes:       []streams.StreamMode{streams.ModeMultiStream, streams.ModeCentralized},
		Workers:     4,
	}
	a, err := sw.Run(context.Background())
	require.NoError(t, err)
	b, err := sw.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, a, 12)
	for i := range a {
		assert.Equal(t, a[i].Mode, b[i].Mode)
		assert.Equal(t, a[i].Seed, b[i].Seed)
		assert.Equal(t, a[i].FinalPrevalence, b[i].FinalPrevalence, "run %d", i)
		assert.NotEqual(t, a[i].ID, b[i].ID)
	}
}

func TestRun_NeutralScenarioMatchesBaseline(t *testing.T) {
	// GIVEN a scenario that changes nothing
	sw := &Sweep{
		Base:        smallBase(),
		Seeds:       []int64{4, 5},
		Multipliers: []float64{3},
		Modes:       []streams.StreamMode{streams.ModeMultiStream, streams.ModeCentralized},
		Scenario:    func(*sim.RunConfig, float64) {},
	}
	runs, err := sw.Run(context.Background())
	require.NoError(t, err)

	// THEN every difference is exactly zero in both modes
	cmp, err := Compare(runs)
	require.NoError(t, err)
	require.Len(t, cmp, 2)
	for _, c := range cmp {
		assert.Equal(t, 2, c.N)
		assert.Equal(t, 0.0, c.MeanDiff)
		assert.Equal(t, 0.0, c.StdDiff)
	}
}

func TestRun_InvalidConfigFails(t *testing.T) {
	base := smallBase()
	base.Model.InitialPrevalence = 2
	_, err := (&Sweep{Base: base, Seeds: []int64{1}}).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Sweep{Base: smallBase(), Seeds: []int64{1, 2}}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare(t *testing.T) {
	runs := []Run{
		{Mode: streams.ModeMultiStream, Seed: 1, Multiplier: 1, FinalPrevalence: 0.10},
		{Mode: streams.ModeMultiStream, Seed: 1, Multiplier: 2, FinalPrevalence: 0.30},
		{Mode: streams.ModeMultiStream, Seed: 2, Multiplier: 1, FinalPrevalence: 0.20},
		{Mode: streams.ModeMultiStream, Seed: 2, Multiplier: 2, FinalPrevalence: 0.60},
		{Mode: streams.ModeCentralized, Seed: 1, Multiplier: 1, FinalPrevalence: 0.50},
		{Mode: streams.ModeCentralized, Seed: 1, Multiplier: 2, FinalPrevalence: 0.50},
	}
	cmp, err := Compare(runs)
	require.NoError(t, err)
	require.Len(t, cmp, 2)

	assert.Equal(t, streams.ModeMultiStream, cmp[0].Mode)
	assert.Equal(t, 2, cmp[0].N)
	testutil.AssertFloat64Equal(t, "mean diff", 0.3, cmp[0].MeanDiff, 1e-9)
	testutil.AssertFloat64Equal(t, "std diff", 0.1, cmp[0].StdDiff, 1e-9)

	assert.Equal(t, streams.ModeCentralized, cmp[1].Mode)
	assert.Equal(t, 1, cmp[1].N)
	assert.Equal(t, 0.0, cmp[1].MeanDiff)
	assert.False(t, math.IsNaN(cmp[1].StdDiff))
}

func TestCompare_MissingBaseline(t *testing.T) {
	_, err := Compare([]Run{{Mode: streams.ModeMultiStream, Seed: 1, Multiplier: 2}})
	assert.Error(t, err)
}
