// Package sweep runs isolated simulations over seeds, scenarios and stream
// modes, and compares each scenario against its same-seed baseline.
//
// Runs never share a registry or population, so they execute concurrently.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/agent-sim/agent-sim/sim"
	"github.com/agent-sim/agent-sim/sim/model"
	"github.com/agent-sim/agent-sim/sim/streams"
)

// Baseline is the multiplier of the unmodified scenario.
const Baseline = 1.0

// Builder returns the modules of one run.
type Builder func(cfg sim.RunConfig) []sim.Module

// Scenario applies a multiplier to a copy of the base configuration.
type Scenario func(cfg *sim.RunConfig, multiplier float64)

// ScaleBeta is the default scenario: it multiplies the transmission rate.
func ScaleBeta(cfg *sim.RunConfig, multiplier float64) {
	cfg.Model.Beta *= multiplier
}

// Sweep describes a grid of runs: every mode × seed × multiplier.
type Sweep struct {
	Base        sim.RunConfig
	Seeds       []int64
	Multipliers []float64 // Baseline is added when missing
	Modes       []streams.StreamMode
	Workers     int      // <= 0 uses GOMAXPROCS
	Scenario    Scenario // nil uses ScaleBeta
	Build       Builder  // nil uses model.Default
}

// Run is the outcome of one isolated simulation.
type Run struct {
	ID                   uuid.UUID
	Mode                 streams.StreamMode
	Seed                 int64
	Multiplier           float64
	FinalPrevalence      float64
	CumulativeInfections int
}

// Plan returns the runs in execution-result order: by mode, then seed, then multiplier.
func (sw *Sweep) Plan() ([]Run, error) {
	if len(sw.Seeds) == 0 {
		return nil, errors.New("sweep: at least one seed is required")
	}
	modes := sw.Modes
	if len(modes) == 0 {
		mode, err := streams.ParseStreamMode(sw.Base.Mode)
		if err != nil {
			return nil, fmt.Errorf("sweep: %w", err)
		}
		modes = []streams.StreamMode{mode}
	}
	mults := sw.multipliers()

	plan := make([]Run, 0, len(modes)*len(sw.Seeds)*len(mults))
	for _, mode := range modes {
		for _, seed := range sw.Seeds {
			for _, m := range mults {
				plan = append(plan, Run{Mode: mode, Seed: seed, Multiplier: m})
			}
		}
	}
	return plan, nil
}

func (sw *Sweep) multipliers() []float64 {
	mults := []float64{Baseline}
	for _, m := range sw.Multipliers {
		if m != Baseline {
			mults = append(mults, m)
		}
	}
	return mults
}

// Run executes the whole grid with at most Workers simulations in flight. The
// first failing run cancels the rest.
func (sw *Sweep) Run(ctx context.Context) ([]Run, error) {
	plan, err := sw.Plan()
	if err != nil {
		return nil, err
	}
	workers := sw.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range plan {
		r := &plan[i]
		g.Go(func() error {
			return sw.runOne(ctx, r)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logrus.Infof("sweep finished: %d runs, %d workers", len(plan), workers)
	return plan, nil
}

func (sw *Sweep) runOne(ctx context.Context, r *Run) error {
	cfg := sw.Base
	cfg.Seed = r.Seed
	cfg.Mode = r.Mode.String()
	scenario := sw.Scenario
	if scenario == nil {
		scenario = ScaleBeta
	}
	scenario(&cfg, r.Multiplier)

	build := sw.Build
	if build == nil {
		build = func(c sim.RunConfig) []sim.Module { return model.Default(c.Model) }
	}
	s, err := sim.NewSimulator(cfg, build(cfg)...)
	if err != nil {
		return fmt.Errorf("sweep: mode=%s seed=%d multiplier=%g: %w", r.Mode, r.Seed, r.Multiplier, err)
	}
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("sweep: run %s: %w", s.ID, err)
	}

	r.ID = s.ID
	r.FinalPrevalence = s.Results.FinalPrevalence()
	r.CumulativeInfections = s.Results.CumulativeInfections()
	logrus.Debugf("[run %s] mode=%s seed=%d multiplier=%g prevalence=%.4f",
		s.ID, r.Mode, r.Seed, r.Multiplier, r.FinalPrevalence)
	return nil
}
