package streams

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mathext/prng"
)

// StreamMode selects the stream implementation for a whole run.
type StreamMode int

const (
	// ModeMultiStream gives every stream its own slot-indexed generator.
	ModeMultiStream StreamMode = iota
	// ModeCentralized routes every stream through one shared generator.
	ModeCentralized
)

func (m StreamMode) String() string {
	switch m {
	case ModeMultiStream:
		return "multistream"
	case ModeCentralized:
		return "centralized"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseStreamMode parses a mode name. The empty string selects ModeMultiStream.
func ParseStreamMode(s string) (StreamMode, error) {
	switch s {
	case "", "multistream":
		return ModeMultiStream, nil
	case "centralized":
		return ModeCentralized, nil
	default:
		return 0, fmt.Errorf("unknown stream mode %q", s)
	}
}

// Config is the run-wide stream configuration.
type Config struct {
	Mode StreamMode
	// SeedOffsets pins the offset of named streams, overriding the name hash.
	SeedOffsets map[string]int64
}

// RandomStream is the contract shared by slot-indexed and centralized streams.
type RandomStream interface {
	Name() string
	SeedOffset() int64
	Initialize(reg *Registry, slots SlotTable) error
	Sample(d Sampler, size Size) ([]float64, error)
	Bernoulli(size Size, p Param) ([]bool, error)
	BernoulliFilter(uids []UID, p Param) ([]UID, error)
	Advance(ti int) error
	Reset()
	Ready() bool
}

// Registry owns every stream of one simulation run. Runs never share a registry.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type Registry struct {
	config      Config
	slots       SlotTable
	baseSeed    int64
	initialized bool
	streams     map[string]RandomStream
	usedOffsets map[int64]string
	shared      *prng.Xoshiro256plusplus
	observer    DrawObserver
}

// NewRegistry creates an uninitialized registry. slots is handed to every
// stream created through CreateStream.
func NewRegistry(cfg Config, slots SlotTable) *Registry {
	return &Registry{
		config:      cfg,
		slots:       slots,
		streams:     make(map[string]RandomStream),
		usedOffsets: make(map[int64]string),
	}
}

// Initialize fixes the run's base seed. It may be called once.
func (r *Registry) Initialize(baseSeed int64) error {
	if r.initialized {
		return fmt.Errorf("registry: %w (base seed %d)", ErrAlreadyInitialized, r.baseSeed)
	}
	r.baseSeed = baseSeed
	r.shared = prng.NewXoshiro256plusplus(uint64(baseSeed))
	r.initialized = true
	return nil
}

// SetObserver installs a draw observer for streams created afterwards.
func (r *Registry) SetObserver(o DrawObserver) {
	r.observer = o
}

// Register records s and returns its resolved seed, base seed + offset.
// checkRepeats=false skips the offset collision check for streams that share a
// generator on purpose.
func (r *Registry) Register(s RandomStream, checkRepeats bool) (int64, error) {
	if !r.initialized {
		return 0, fmt.Errorf("registry: stream %q: %w", s.Name(), ErrNotInitialized)
	}
	if _, ok := r.streams[s.Name()]; ok {
		return 0, fmt.Errorf("registry: stream %q: %w", s.Name(), ErrDuplicateName)
	}
	offset := s.SeedOffset()
	if checkRepeats {
		if owner, ok := r.usedOffsets[offset]; ok {
			return 0, fmt.Errorf("registry: stream %q: %w: offset %d is held by %q",
				s.Name(), ErrSeedCollision, offset, owner)
		}
		r.usedOffsets[offset] = s.Name()
	}
	r.streams[s.Name()] = s

	seed := r.baseSeed + offset
	logrus.Debugf("stream %q registered: mode=%s offset=%d seed=%d", s.Name(), r.config.Mode, offset, seed)
	return seed, nil
}

// CreateStream builds, registers and initializes a stream of the run's mode.
// A configured offset for name applies unless opts override it.
func (r *Registry) CreateStream(name string, opts ...StreamOption) (RandomStream, error) {
	var s RandomStream
	switch r.config.Mode {
	case ModeCentralized:
		s = NewCentralizedStream(name)
	default:
		if offset, ok := r.config.SeedOffsets[name]; ok {
			opts = append([]StreamOption{WithSeedOffset(offset)}, opts...)
		}
		s = NewStream(name, opts...)
	}
	if err := s.Initialize(r, r.slots); err != nil {
		return nil, err
	}
	return s, nil
}

// Advance moves every stream to timestep ti. Streams are independent, so the
// order in which they are advanced does not matter.
func (r *Registry) Advance(ti int) error {
	if !r.initialized {
		return fmt.Errorf("registry: %w", ErrNotInitialized)
	}
	for _, s := range r.streams {
		if err := s.Advance(ti); err != nil {
			return err
		}
	}
	logrus.Tracef("registry advanced %d streams to ti=%d", len(r.streams), ti)
	return nil
}

// ResetAll rewinds every stream, and the shared centralized generator, to the
// state it had before any draw.
func (r *Registry) ResetAll() {
	for _, s := range r.streams {
		s.Reset()
	}
	if r.shared != nil {
		r.shared.Seed(uint64(r.baseSeed))
	}
	logrus.Debugf("registry reset %d streams", len(r.streams))
}

// Stream returns the registered stream with the given name.
func (r *Registry) Stream(name string) (RandomStream, bool) {
	s, ok := r.streams[name]
	return s, ok
}

// Names returns the registered stream names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.streams))
	for name := range r.streams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mode returns the run's stream mode.
func (r *Registry) Mode() StreamMode { return r.config.Mode }

// BaseSeed returns the run's root seed.
func (r *Registry) BaseSeed() int64 { return r.baseSeed }

// Initialized reports whether Initialize has been called.
func (r *Registry) Initialized() bool { return r.initialized }
