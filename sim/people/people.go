// Package people holds the agent population and its slot assignments.
//
// Founders occupy slots 0..n0-1. Newborns draw a slot from [n0, ceil(slotScale·n0))
// on a dedicated stream, sampled by their mother's UID, so a baby's slot matches
// across scenarios whenever its mother does. Slots of removed agents stay
// resolvable; two agents may share a slot, which only couples their draws.
package people

import (
	"fmt"
	"math"

	"github.com/agent-sim/agent-sim/sim/streams"
)

// DefaultSlotScale is the newborn slot range as a multiple of the founder count.
const DefaultSlotScale = 5.0

// People is the population of one run. UIDs are dense and never reused.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type People struct {
	n0        int
	slotScale float64

	slots    []int64
	alive    []bool
	female   []bool
	infected []bool
	nAlive   int
}

// New creates a population of n founders.
func New(n int, slotScale float64) (*People, error) {
	if n < 0 {
		return nil, fmt.Errorf("people: founder count must be non-negative, got %d", n)
	}
	if slotScale < 1 || math.IsNaN(slotScale) || math.IsInf(slotScale, 0) {
		return nil, fmt.Errorf("people: slot scale must be >= 1, got %v", slotScale)
	}
	p := &People{n0: n, slotScale: slotScale}
	p.Reset()
	return p, nil
}

// Reset restores the founder population with every attribute cleared.
func (p *People) Reset() {
	p.slots = make([]int64, p.n0)
	p.alive = make([]bool, p.n0)
	p.female = make([]bool, p.n0)
	p.infected = make([]bool, p.n0)
	for i := range p.slots {
		p.slots[i] = int64(i)
		p.alive[i] = true
	}
	p.nAlive = p.n0
}

// SlotOf implements streams.SlotTable. Removed agents keep their slot.
func (p *People) SlotOf(uid streams.UID) (int64, bool) {
	if uid < 0 || int(uid) >= len(p.slots) {
		return 0, false
	}
	return p.slots[uid], true
}

// Len returns the number of live agents.
func (p *People) Len() int { return p.nAlive }

// Total returns the number of agents ever created.
func (p *People) Total() int { return len(p.slots) }

// Founders returns the initial population size.
func (p *People) Founders() int { return p.n0 }

// SlotRange returns the half-open slot interval newborns draw from.
func (p *People) SlotRange() (lo, hi int64) {
	lo = int64(p.n0)
	hi = int64(math.Ceil(p.slotScale * float64(p.n0)))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// IsAlive reports whether uid is a live agent.
func (p *People) IsAlive(uid streams.UID) bool {
	return p.valid(uid) && p.alive[uid]
}

// Alive returns the live agents in UID order.
func (p *People) Alive() []streams.UID {
	return p.Filter(func(streams.UID) bool { return true })
}

// Filter returns the live agents for which keep is true, in UID order.
func (p *People) Filter(keep func(uid streams.UID) bool) []streams.UID {
	out := make([]streams.UID, 0, p.nAlive)
	for i, ok := range p.alive {
		if ok && keep(streams.UID(i)) {
			out = append(out, streams.UID(i))
		}
	}
	return out
}

// Remove takes uids out of the live set. Unknown or already removed UIDs are ignored.
func (p *People) Remove(uids []streams.UID) {
	for _, uid := range uids {
		if p.IsAlive(uid) {
			p.alive[uid] = false
			p.nAlive--
		}
	}
}

// Births adds one newborn per mother and returns the new UIDs in mother order.
// Slots are drawn from rng by mother UID.
func (p *People) Births(mothers []streams.UID, rng streams.RandomStream) ([]streams.UID, error) {
	if len(mothers) == 0 {
		return []streams.UID{}, nil
	}
	lo, hi := p.SlotRange()
	slots, err := rng.Sample(streams.Integers{
		Low:  streams.Scalar(float64(lo)),
		High: streams.Scalar(float64(hi)),
	}, streams.UIDs(mothers))
	if err != nil {
		return nil, fmt.Errorf("people: assigning newborn slots: %w", err)
	}

	babies := make([]streams.UID, len(mothers))
	for i, slot := range slots {
		babies[i] = streams.UID(len(p.slots))
		p.slots = append(p.slots, int64(slot))
		p.alive = append(p.alive, true)
		p.female = append(p.female, false)
		p.infected = append(p.infected, false)
		p.nAlive++
	}
	return babies, nil
}

// IsFemale reports the agent's sex.
func (p *People) IsFemale(uid streams.UID) bool { return p.valid(uid) && p.female[uid] }

// SetFemale sets the agent's sex.
func (p *People) SetFemale(uid streams.UID, v bool) {
	if p.valid(uid) {
		p.female[uid] = v
	}
}

// IsInfected reports whether the agent is infected.
func (p *People) IsInfected(uid streams.UID) bool { return p.valid(uid) && p.infected[uid] }

// SetInfected sets the agent's infection state.
func (p *People) SetInfected(uid streams.UID, v bool) {
	if p.valid(uid) {
		p.infected[uid] = v
	}
}

// CountInfected returns the number of live infected agents.
func (p *People) CountInfected() int {
	n := 0
	for i, ok := range p.alive {
		if ok && p.infected[i] {
			n++
		}
	}
	return n
}

func (p *People) valid(uid streams.UID) bool {
	return uid >= 0 && int(uid) < len(p.slots)
}
