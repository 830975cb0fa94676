package model

import (
	"github.com/agent-sim/agent-sim/sim"
	"github.com/agent-sim/agent-sim/sim/streams"
)

// femaleShare is the probability that an agent is female.
const femaleShare = 0.5

// Births lets live females give birth with probability Rate per step. Newborn
// slots are drawn by mother UID, newborn sex by the newborn's own slot.
type Births struct {
	Rate float64

	founderSex, pregnancy, slots, sex streams.RandomStream
}

// NewBirths creates a Births module.
func NewBirths(rate float64) *Births {
	return &Births{Rate: rate}
}

func (m *Births) Name() string { return "births" }

func (m *Births) InitStreams(reg *streams.Registry) error {
	var err error
	if m.founderSex, err = reg.CreateStream(StreamFounderSex); err != nil {
		return err
	}
	if m.pregnancy, err = reg.CreateStream(StreamPregnancy); err != nil {
		return err
	}
	if m.slots, err = reg.CreateStream(StreamSlots); err != nil {
		return err
	}
	m.sex, err = reg.CreateStream(StreamSex)
	return err
}

// Init assigns founder sex.
func (m *Births) Init(s *sim.Simulator) error {
	return assignSex(s, m.founderSex, s.People.Alive())
}

func (m *Births) Step(ti int, s *sim.Simulator) error {
	females := s.People.Filter(s.People.IsFemale)
	mothers, err := m.pregnancy.BernoulliFilter(females, streams.Scalar(m.Rate))
	if err != nil {
		return err
	}
	babies, err := s.People.Births(mothers, m.slots)
	if err != nil {
		return err
	}
	if err := assignSex(s, m.sex, babies); err != nil {
		return err
	}
	s.Results.Births[ti] += len(babies)
	return nil
}

func assignSex(s *sim.Simulator, rng streams.RandomStream, uids []streams.UID) error {
	female, err := rng.Bernoulli(streams.UIDs(uids), streams.Scalar(femaleShare))
	if err != nil {
		return err
	}
	for i, uid := range uids {
		s.People.SetFemale(uid, female[i])
	}
	return nil
}
