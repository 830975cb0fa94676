package model

import (
	"github.com/agent-sim/agent-sim/sim"
	"github.com/agent-sim/agent-sim/sim/streams"
)

// Mortality removes agents with a per-agent death probability: the background
// rate plus an excess while infected.
type Mortality struct {
	Background float64
	Excess     float64

	death streams.RandomStream
}

// NewMortality creates a Mortality module.
func NewMortality(background, excess float64) *Mortality {
	return &Mortality{Background: background, Excess: excess}
}

func (m *Mortality) Name() string { return "mortality" }

func (m *Mortality) InitStreams(reg *streams.Registry) error {
	var err error
	m.death, err = reg.CreateStream(StreamDeath)
	return err
}

func (m *Mortality) Init(*sim.Simulator) error { return nil }

func (m *Mortality) Step(ti int, s *sim.Simulator) error {
	alive := s.People.Alive()
	probs := make([]float64, len(alive))
	for i, uid := range alive {
		probs[i] = m.Background
		if s.People.IsInfected(uid) {
			probs[i] += m.Excess
		}
	}
	dead, err := m.death.BernoulliFilter(alive, streams.PerAgent(probs))
	if err != nil {
		return err
	}
	s.People.Remove(dead)
	s.Results.Deaths[ti] += len(dead)
	return nil
}
