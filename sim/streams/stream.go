package streams

import (
	"fmt"
	"math/rand/v2"
)

// Stream is one slot-indexed random stream tied to one decision per timestep.
//
// A draw for agents reads the value at each agent's slot out of a single
// contiguous draw of max(slot)+1 values, so an agent's value depends only on the
// stream seed, the timestep and its slot, never on which other agents were
// requested or how large the population is. This is what lets two scenario runs
// share common random numbers.
//
// Each timestep owns a disjoint window of the generator sequence (see Advance),
// and a stream may be sampled at most once per timestep.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type Stream struct {
	name       string
	seedOffset int64
	seed       int64
	slots      SlotTable
	observer   DrawObserver

	src  *rand.PCG
	init state128
	ti   int

	initialized bool
	ready       bool
}

// StreamOption configures a Stream at construction.
type StreamOption func(*Stream)

// WithSeedOffset overrides the hashed seed offset, e.g. to pin determinism in tests.
func WithSeedOffset(offset int64) StreamOption {
	return func(s *Stream) {
		s.seedOffset = offset
	}
}

// NewStream creates an uninitialized stream. Its seed offset is derived from the
// name unless overridden.
func NewStream(name string, opts ...StreamOption) *Stream {
	s := &Stream{
		name:       name,
		seedOffset: SeedOffset(name),
		ready:      true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the stream's unique name.
func (s *Stream) Name() string { return s.name }

// SeedOffset returns the offset added to the registry's base seed.
func (s *Stream) SeedOffset() int64 { return s.seedOffset }

// Seed returns the resolved seed; valid once initialized.
func (s *Stream) Seed() int64 { return s.seed }

// Ready reports whether the stream may be sampled on the current timestep.
func (s *Stream) Ready() bool { return s.ready }

// Timestep returns the timestep the generator was last advanced to.
func (s *Stream) Timestep() int { return s.ti }

// Initialize registers the stream and seeds its generator. With a nil registry
// the stream runs standalone and its seed is its offset. Initializing twice is a
// no-op.
func (s *Stream) Initialize(reg *Registry, slots SlotTable) error {
	if s.initialized {
		return nil
	}
	if slots == nil {
		return fmt.Errorf("stream %q: %w", s.name, ErrMissingSlots)
	}
	seed := s.seedOffset
	if reg != nil {
		var err error
		if seed, err = reg.Register(s, true); err != nil {
			return err
		}
		s.observer = reg.observer
	}

	s.seed = seed
	s.slots = slots
	s.init = seedState(seed)
	s.src = rand.NewPCG(s.init.hi, s.init.lo)
	s.ti = 0
	s.initialized = true
	s.ready = true
	return nil
}

// Sample draws from d for the agents, mask or count described by size.
// Empty requests return an empty slice without touching the stream.
func (s *Stream) Sample(d Sampler, size Size) ([]float64, error) {
	req, err := ResolveRequest(size, s.slots)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", s.name, err)
	}
	if req.Empty() {
		return []float64{}, nil
	}
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	if req.Requested() == 0 {
		// A mask with no true entries uses up the timestep but has nothing to return.
		s.ready = false
		recordDraw(s.observer, s.name, s.ti, d, DrawRequest{Basis: req.Basis, Positions: []int{}})
		return []float64{}, nil
	}
	params, err := expandParams(d.Params(), req)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %s: %w", s.name, d.Name(), err)
	}

	vals, err := d.Draw(s.src, params, req.Size)
	if err != nil {
		s.seekWindow()
		return nil, fmt.Errorf("stream %q: %s: %w", s.name, d.Name(), err)
	}
	s.ready = false
	recordDraw(s.observer, s.name, s.ti, d, req)
	return req.Select(vals), nil
}

func (s *Stream) resolve(size Size) (DrawRequest, error) {
	return ResolveRequest(size, s.slots)
}

// Bernoulli returns, for each requested agent, whether its draw fell below p.
func (s *Stream) Bernoulli(size Size, p Param) ([]bool, error) {
	return bernoulli(s, size, p)
}

// BernoulliFilter returns the subset of uids whose draw fell below p, in order.
func (s *Stream) BernoulliFilter(uids []UID, p Param) ([]UID, error) {
	return bernoulliFilter(s, uids, p)
}

// Advance rewinds the generator to its initial state and jumps ti times, giving
// timestep ti its own window of the sequence. The result depends only on ti, so
// calling it again with the same or a smaller ti is a deterministic rewind.
func (s *Stream) Advance(ti int) error {
	if ti < 0 {
		return fmt.Errorf("stream %q: %w: %d", s.name, ErrInvalidTimestep, ti)
	}
	if !s.initialized {
		return fmt.Errorf("stream %q: %w", s.name, ErrNotInitialized)
	}
	s.ti = ti
	s.seekWindow()
	s.ready = true
	return nil
}

// Reset restores the initial generator state, which is the window of timestep 0,
// and makes the stream ready again.
func (s *Stream) Reset() {
	if !s.initialized {
		return
	}
	s.ti = 0
	s.seekWindow()
	s.ready = true
}

// seekWindow moves the generator to the start of the current timestep's window.
// A failed draw calls it so that it leaves no trace in the sequence.
func (s *Stream) seekWindow() {
	st := s.init.advance(jumpDelta(s.ti))
	s.src.Seed(st.hi, st.lo)
}

func (s *Stream) checkReady() error {
	if !s.initialized {
		return fmt.Errorf("stream %q: %w", s.name, ErrNotInitialized)
	}
	if !s.ready {
		return fmt.Errorf("stream %q: %w (timestep %d)", s.name, ErrConsumedStream, s.ti)
	}
	return nil
}

// drawer is what the Bernoulli helpers need from either stream kind.
type drawer interface {
	Name() string
	Sample(d Sampler, size Size) ([]float64, error)
	resolve(size Size) (DrawRequest, error)
}

// bernoulli draws one uniform per slot and compares each requested agent's own
// uniform against that agent's probability, so agents sharing a slot may carry
// different probabilities.
func bernoulli(s drawer, size Size, p Param) ([]bool, error) {
	req, err := s.resolve(size)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", s.Name(), err)
	}
	if req.Empty() {
		return []bool{}, nil
	}
	prob, err := probabilityOf(p, req)
	if err != nil {
		return nil, fmt.Errorf("stream %q: bernoulli: %w", s.Name(), err)
	}
	vals, err := s.Sample(bernoulliUniforms{}, size)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(vals))
	for i, v := range vals {
		out[i] = v < prob(i)
	}
	return out, nil
}

// probabilityOf returns the probability of the i-th requested agent. p may be a
// scalar, one value per requested agent or one value per underlying draw.
func probabilityOf(p Param, req DrawRequest) (func(i int) float64, error) {
	switch {
	case p.IsScalar():
		return p.At, nil
	case len(p.values) == req.Requested():
		return p.At, nil
	case len(p.values) == req.Size:
		return func(i int) float64 { return p.values[req.Positions[i]] }, nil
	default:
		return nil, fmt.Errorf("%w: p has %d values, want %d (requested) or %d (drawn)",
			ErrParameterLength, len(p.values), req.Requested(), req.Size)
	}
}

func bernoulliFilter(s drawer, uids []UID, p Param) ([]UID, error) {
	hits, err := bernoulli(s, UIDs(uids), p)
	if err != nil {
		return nil, err
	}
	out := make([]UID, 0, len(hits))
	for i, hit := range hits {
		if hit {
			out = append(out, uids[i])
		}
	}
	return out, nil
}
