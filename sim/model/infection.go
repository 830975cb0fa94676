package model

import (
	"math"

	"github.com/agent-sim/agent-sim/sim"
	"github.com/agent-sim/agent-sim/sim/streams"
)

// Infection is a susceptible-infected-susceptible disease with frequency-dependent
// transmission: each susceptible is infected with probability beta·prevalence.
type Infection struct {
	Beta              float64
	InitialPrevalence float64
	Recovery          float64

	seeding, transmission, recovery streams.RandomStream
}

// NewInfection creates an Infection module.
func NewInfection(beta, initialPrevalence, recovery float64) *Infection {
	return &Infection{Beta: beta, InitialPrevalence: initialPrevalence, Recovery: recovery}
}

func (m *Infection) Name() string { return "infection" }

func (m *Infection) InitStreams(reg *streams.Registry) error {
	var err error
	if m.seeding, err = reg.CreateStream(StreamInfectionSeed); err != nil {
		return err
	}
	if m.transmission, err = reg.CreateStream(StreamInfection); err != nil {
		return err
	}
	m.recovery, err = reg.CreateStream(StreamRecovery)
	return err
}

// Init infects each founder with probability InitialPrevalence.
func (m *Infection) Init(s *sim.Simulator) error {
	infected, err := m.seeding.BernoulliFilter(s.People.Alive(), streams.Scalar(m.InitialPrevalence))
	if err != nil {
		return err
	}
	for _, uid := range infected {
		s.People.SetInfected(uid, true)
	}
	return nil
}

// Step applies transmission then recovery, both against the state at the start
// of the step.
func (m *Infection) Step(ti int, s *sim.Simulator) error {
	p := s.People
	var susceptible, infected []streams.UID
	for _, uid := range p.Alive() {
		if p.IsInfected(uid) {
			infected = append(infected, uid)
		} else {
			susceptible = append(susceptible, uid)
		}
	}

	prob := 0.0
	if p.Len() > 0 {
		prob = math.Min(1, m.Beta*float64(len(infected))/float64(p.Len()))
	}
	cases, err := m.transmission.BernoulliFilter(susceptible, streams.Scalar(prob))
	if err != nil {
		return err
	}
	recovered, err := m.recovery.BernoulliFilter(infected, streams.Scalar(m.Recovery))
	if err != nil {
		return err
	}

	for _, uid := range cases {
		p.SetInfected(uid, true)
	}
	for _, uid := range recovered {
		p.SetInfected(uid, false)
	}
	s.Results.NewInfections[ti] += len(cases)
	s.Results.Recoveries[ti] += len(recovered)
	return nil
}
