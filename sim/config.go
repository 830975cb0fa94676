package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agent-sim/agent-sim/sim/people"
	"github.com/agent-sim/agent-sim/sim/streams"
	"github.com/agent-sim/agent-sim/sim/trace"
)

// ModelConfig holds the parameters of the built-in disease and demography modules.
type ModelConfig struct {
	Beta              float64 `yaml:"beta"`               // transmission rate per step, scaled by prevalence
	InitialPrevalence float64 `yaml:"initial_prevalence"` // share of founders infected at ti=0
	Recovery          float64 `yaml:"recovery"`           // per-step recovery probability
	Mortality         float64 `yaml:"mortality"`          // per-step background death probability
	InfectedMortality float64 `yaml:"infected_mortality"` // extra per-step death probability while infected
	BirthRate         float64 `yaml:"birth_rate"`         // per-step pregnancy probability of live females
}

// RunConfig is the configuration of one simulation run, loadable from a YAML file.
type RunConfig struct {
	Seed        int64            `yaml:"seed"`
	Mode        string           `yaml:"mode"` // "multistream" (default) or "centralized"
	Agents      int              `yaml:"n_agents"`
	Steps       int              `yaml:"n_steps"`
	SlotScale   float64          `yaml:"slot_scale"`
	SeedOffsets map[string]int64 `yaml:"seed_offsets"`
	Trace       string           `yaml:"trace"` // "none" (default) or "draws"
	Model       ModelConfig      `yaml:"model"`
}

// DefaultRunConfig returns the configuration used when no file is given.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Seed:      42,
		Mode:      streams.ModeMultiStream.String(),
		Agents:    1000,
		Steps:     50,
		SlotScale: people.DefaultSlotScale,
		Trace:     string(trace.TraceLevelNone),
		Model: ModelConfig{
			Beta:              0.3,
			InitialPrevalence: 0.05,
			Recovery:          0.1,
			Mortality:         0.002,
			InfectedMortality: 0.01,
			BirthRate:         0.004,
		},
	}
}

// LoadRunConfig reads a YAML run configuration. Fields absent from the file keep
// their DefaultRunConfig values; unknown fields are an error so typos surface.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	cfg := DefaultRunConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}

// Validate checks names and parameter ranges.
func (c *RunConfig) Validate() error {
	if _, err := streams.ParseStreamMode(c.Mode); err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q", c.Trace)
	}
	if c.Agents < 0 {
		return fmt.Errorf("n_agents must be non-negative, got %d", c.Agents)
	}
	if c.Steps < 0 {
		return fmt.Errorf("n_steps must be non-negative, got %d", c.Steps)
	}
	if c.SlotScale < 1 {
		return fmt.Errorf("slot_scale must be >= 1, got %f", c.SlotScale)
	}
	if c.Model.Beta < 0 {
		return fmt.Errorf("beta must be non-negative, got %f", c.Model.Beta)
	}
	probs := []struct {
		name string
		v    float64
	}{
		{"initial_prevalence", c.Model.InitialPrevalence},
		{"recovery", c.Model.Recovery},
		{"mortality", c.Model.Mortality},
		{"infected_mortality", c.Model.InfectedMortality},
		{"birth_rate", c.Model.BirthRate},
	}
	for _, p := range probs {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", p.name, p.v)
		}
	}
	if c.Model.Mortality+c.Model.InfectedMortality > 1 {
		return fmt.Errorf("mortality + infected_mortality must not exceed 1, got %f",
			c.Model.Mortality+c.Model.InfectedMortality)
	}
	return nil
}

// StreamConfig converts the run configuration into the registry's configuration.
func (c *RunConfig) StreamConfig() (streams.Config, error) {
	mode, err := streams.ParseStreamMode(c.Mode)
	if err != nil {
		return streams.Config{}, err
	}
	return streams.Config{Mode: mode, SeedOffsets: c.SeedOffsets}, nil
}
