package streams

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mathext/prng"
)

// CentralizedStream has the Stream contract without slot indirection: every
// stream of a registry consumes one shared generator in call order. Identifier
// requests draw len(uids) values and mask requests draw one value per true
// entry. There is no agent-level reproducibility across differing populations
// or call orders; runs are still reproducible end to end for a fixed seed.
//
// Advance and Reset only restore readiness, the shared generator keeps going.
// A failed draw leaves the stream ready, though the shared generator may have moved.
type CentralizedStream struct {
	name     string
	src      rand.Source
	observer DrawObserver
	ti       int

	initialized bool
	ready       bool
}

// NewCentralizedStream creates an uninitialized centralized stream.
func NewCentralizedStream(name string) *CentralizedStream {
	return &CentralizedStream{name: name, ready: true}
}

// Name returns the stream's unique name.
func (c *CentralizedStream) Name() string { return c.name }

// SeedOffset is always 0: centralized streams share the registry's generator.
func (c *CentralizedStream) SeedOffset() int64 { return 0 }

// Ready reports whether the stream may be sampled on the current timestep.
func (c *CentralizedStream) Ready() bool { return c.ready }

// Initialize registers the stream without seed-collision checks and binds it to
// the registry's shared generator. Slots are accepted for interface parity and
// ignored. A standalone stream gets a private generator seeded with 0.
func (c *CentralizedStream) Initialize(reg *Registry, _ SlotTable) error {
	if c.initialized {
		return nil
	}
	if reg != nil {
		if _, err := reg.Register(c, false); err != nil {
			return err
		}
		c.src = reg.shared
		c.observer = reg.observer
	} else {
		c.src = prng.NewXoshiro256plusplus(0)
	}
	c.initialized = true
	c.ready = true
	return nil
}

// Sample draws from d in call order.
func (c *CentralizedStream) Sample(d Sampler, size Size) ([]float64, error) {
	req, err := ResolveRequest(size, nil)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", c.name, err)
	}
	if req.Empty() {
		return []float64{}, nil
	}
	if !c.initialized {
		return nil, fmt.Errorf("stream %q: %w", c.name, ErrNotInitialized)
	}
	if !c.ready {
		return nil, fmt.Errorf("stream %q: %w (timestep %d)", c.name, ErrConsumedStream, c.ti)
	}
	params, err := expandParams(d.Params(), req)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %s: %w", c.name, d.Name(), err)
	}

	vals, err := d.Draw(c.src, params, req.Size)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %s: %w", c.name, d.Name(), err)
	}
	c.ready = false
	recordDraw(c.observer, c.name, c.ti, d, req)
	return vals, nil
}

func (c *CentralizedStream) resolve(size Size) (DrawRequest, error) {
	return ResolveRequest(size, nil)
}

// Bernoulli returns, for each requested agent, whether its draw fell below p.
func (c *CentralizedStream) Bernoulli(size Size, p Param) ([]bool, error) {
	return bernoulli(c, size, p)
}

// BernoulliFilter returns the subset of uids whose draw fell below p, in order.
func (c *CentralizedStream) BernoulliFilter(uids []UID, p Param) ([]UID, error) {
	return bernoulliFilter(c, uids, p)
}

// Advance records the timestep and restores readiness.
func (c *CentralizedStream) Advance(ti int) error {
	if ti < 0 {
		return fmt.Errorf("stream %q: %w: %d", c.name, ErrInvalidTimestep, ti)
	}
	if !c.initialized {
		return fmt.Errorf("stream %q: %w", c.name, ErrNotInitialized)
	}
	c.ti = ti
	c.ready = true
	return nil
}

// Reset restores readiness and the timestep to 0.
func (c *CentralizedStream) Reset() {
	c.ti = 0
	c.ready = true
}
