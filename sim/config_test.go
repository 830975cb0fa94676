package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-sim/agent-sim/sim/streams"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRunConfig_ValidYAML(t *testing.T) {
	yaml := `
seed: 7
mode: centralized
n_agents: 250
n_steps: 12
slot_scale: 3
seed_offsets:
  infection: 11
trace: draws
model:
  beta: 0.5
  birth_rate: 0.01
`
	cfg, err := LoadRunConfig(writeTempYAML(t, yaml))
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "centralized", cfg.Mode)
	assert.Equal(t, 250, cfg.Agents)
	assert.Equal(t, 12, cfg.Steps)
	assert.Equal(t, 3.0, cfg.SlotScale)
	assert.Equal(t, map[string]int64{"infection": 11}, cfg.SeedOffsets)
	assert.Equal(t, "draws", cfg.Trace)
	assert.Equal(t, 0.5, cfg.Model.Beta)
	assert.Equal(t, 0.01, cfg.Model.BirthRate)
	require.NoError(t, cfg.Validate())
}

func TestLoadRunConfig_AbsentFieldsKeepDefaults(t *testing.T) {
	cfg, err := LoadRunConfig(writeTempYAML(t, "seed: 3\n"))
	require.NoError(t, err)
	def := DefaultRunConfig()
	assert.Equal(t, int64(3), cfg.Seed)
	assert.Equal(t, def.Agents, cfg.Agents)
	assert.Equal(t, def.Model, cfg.Model)
}

func TestLoadRunConfig_Errors(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadRunConfig(writeTempYAML(t, "seed: [1, 2\n"))
	assert.Error(t, err)

	// Typos must not be silently ignored.
	_, err = LoadRunConfig(writeTempYAML(t, "n_agent: 10\n"))
	assert.Error(t, err)
}

func TestLoadRunConfig_EmptyFileIsDefaults(t *testing.T) {
	cfg, err := LoadRunConfig(writeTempYAML(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultRunConfig(), *cfg)
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *RunConfig)
		wantErr string
	}{
		{"defaults", func(*RunConfig) {}, ""},
		{"unknown mode", func(c *RunConfig) { c.Mode = "global" }, "unknown stream mode"},
		{"unknown trace", func(c *RunConfig) { c.Trace = "verbose" }, "unknown trace level"},
		{"negative agents", func(c *RunConfig) { c.Agents = -1 }, "n_agents"},
		{"negative steps", func(c *RunConfig) { c.Steps = -1 }, "n_steps"},
		{"slot scale below one", func(c *RunConfig) { c.SlotScale = 0.5 }, "slot_scale"},
		{"negative beta", func(c *RunConfig) { c.Model.Beta = -0.1 }, "beta"},
		{"prevalence above one", func(c *RunConfig) { c.Model.InitialPrevalence = 1.5 }, "initial_prevalence"},
		{"combined mortality above one", func(c *RunConfig) {
			c.Model.Mortality = 0.6
			c.Model.InfectedMortality = 0.6
		}, "mortality + infected_mortality"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunConfig_StreamConfig(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.Mode = "centralized"
	cfg.SeedOffsets = map[string]int64{"a": 1}
	sc, err := cfg.StreamConfig()
	require.NoError(t, err)
	assert.Equal(t, streams.ModeCentralized, sc.Mode)
	assert.Equal(t, int64(1), sc.SeedOffsets["a"])
}
