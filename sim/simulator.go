// sim/simulator.go
package sim

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agent-sim/agent-sim/sim/people"
	"github.com/agent-sim/agent-sim/sim/streams"
	"github.com/agent-sim/agent-sim/sim/trace"
)

// Module is one collaborator of the simulation loop: a disease, a demographic
// process or an intervention. Modules own their streams and must sample each of
// them at most once per timestep.
type Module interface {
	Name() string
	// InitStreams creates the module's streams. Called once per simulator.
	InitStreams(reg *streams.Registry) error
	// Init sets initial conditions. Called at ti=0, after the streams have been
	// advanced and before any Step.
	Init(s *Simulator) error
	// Step applies the module for timestep ti.
	Step(ti int, s *Simulator) error
}

// Simulator runs a fixed-step agent-based simulation over one population and one
// stream registry.
//
// Thread-safety: NOT thread-safe. Isolated runs use separate simulators.
type Simulator struct {
	ID       uuid.UUID
	Key      SimulationKey
	Config   RunConfig
	People   *people.People
	Registry *streams.Registry
	// Trace is nil unless draw tracing is enabled.
	Trace   *trace.SimulationTrace
	Results *Results

	modules []Module
	ti      int
}

// NewSimulator validates cfg, builds the population and registry, and lets every
// module create its streams.
func NewSimulator(cfg RunConfig, modules ...Module) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	pop, err := people.New(cfg.Agents, cfg.SlotScale)
	if err != nil {
		return nil, err
	}
	streamCfg, err := cfg.StreamConfig()
	if err != nil {
		return nil, err
	}
	key := NewSimulationKey(cfg.Seed)
	reg, err := NewStreamRegistry(key, streamCfg, pop)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		ID:       uuid.New(),
		Key:      key,
		Config:   cfg,
		People:   pop,
		Registry: reg,
		Results:  newResults(cfg.Steps),
		modules:  modules,
	}
	if trace.TraceLevel(cfg.Trace) == trace.TraceLevelDraws {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDraws})
		reg.SetObserver(s.Trace)
	}
	for _, m := range modules {
		if err := m.InitStreams(reg); err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name(), err)
		}
	}
	logrus.Debugf("[run %s] created: seed=%d mode=%s agents=%d streams=%v",
		s.ID, cfg.Seed, reg.Mode(), cfg.Agents, reg.Names())
	return s, nil
}

// Timestep returns the current (or last completed) timestep.
func (s *Simulator) Timestep() int { return s.ti }

// Run simulates every step from ti=0. Running again rewinds the population and
// every stream first, so a rerun reproduces the previous run exactly.
func (s *Simulator) Run(ctx context.Context) error {
	s.People.Reset()
	s.Registry.ResetAll()
	s.Results = newResults(s.Config.Steps)
	if s.Trace != nil {
		s.Trace.Draws = s.Trace.Draws[:0]
	}

	for ti := 0; ti < s.Config.Steps; ti++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.step(ti); err != nil {
			return err
		}
	}
	logrus.Infof("[run %s] finished %d steps: population=%d prevalence=%.4f",
		s.ID, s.Config.Steps, s.People.Len(), s.Results.FinalPrevalence())
	return nil
}

func (s *Simulator) step(ti int) error {
	s.ti = ti
	if err := s.Registry.Advance(ti); err != nil {
		return fmt.Errorf("ti=%d: %w", ti, err)
	}
	if ti == 0 {
		for _, m := range s.modules {
			if err := m.Init(s); err != nil {
				return fmt.Errorf("module %s: init: %w", m.Name(), err)
			}
		}
	}
	for _, m := range s.modules {
		if err := m.Step(ti, s); err != nil {
			return fmt.Errorf("module %s: ti=%d: %w", m.Name(), ti, err)
		}
	}
	s.Results.Alive[ti] = s.People.Len()
	s.Results.Infected[ti] = s.People.CountInfected()
	logrus.Tracef("[run %s] ti=%d alive=%d infected=%d", s.ID, ti, s.Results.Alive[ti], s.Results.Infected[ti])
	return nil
}
