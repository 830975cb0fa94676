package streams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCentralizedRegistry(t *testing.T, seed int64) *Registry {
	t.Helper()
	reg := NewRegistry(Config{Mode: ModeCentralized}, SequentialSlots(10))
	require.NoError(t, reg.Initialize(seed))
	return reg
}

func TestCentralized_CreateStreamUsesMode(t *testing.T) {
	reg := newCentralizedRegistry(t, 1)
	s, err := reg.CreateStream("c")
	require.NoError(t, err)
	_, ok := s.(*CentralizedStream)
	assert.True(t, ok, "expected *CentralizedStream, got %T", s)
	assert.Equal(t, int64(0), s.SeedOffset())

	// Several centralized streams share offset 0 without colliding.
	_, err = reg.CreateStream("d")
	assert.NoError(t, err)
}

func TestCentralized_PositionalResolution(t *testing.T) {
	reg := newCentralizedRegistry(t, 1)
	s, err := reg.CreateStream("c")
	require.NoError(t, err)

	vals, err := s.Sample(Random{}, UIDs{9, 2})
	require.NoError(t, err)
	assert.Len(t, vals, 2)

	require.NoError(t, reg.Advance(1))
	vals, err = s.Sample(Random{}, Mask{true, false, true, false, false})
	require.NoError(t, err)
	assert.Len(t, vals, 2)

	// UIDs need no slot table in centralized mode.
	require.NoError(t, reg.Advance(2))
	_, err = s.Sample(Random{}, UIDs{1000})
	assert.NoError(t, err)
}

func TestCentralized_SharedGeneratorInCallOrder(t *testing.T) {
	// Two streams draining one generator: b's values depend on whether a drew first.
	draw := func(touchA bool) []float64 {
		reg := newCentralizedRegistry(t, 5)
		a, err := reg.CreateStream("a")
		require.NoError(t, err)
		b, err := reg.CreateStream("b")
		require.NoError(t, err)
		if touchA {
			_, err := a.Sample(Random{}, Count(1))
			require.NoError(t, err)
		}
		vals, err := b.Sample(Random{}, Count(3))
		require.NoError(t, err)
		return vals
	}
	assert.NotEqual(t, draw(false), draw(true))
	assert.Equal(t, draw(true), draw(true), "whole runs stay reproducible")
}

func TestCentralized_ReadinessAndErrors(t *testing.T) {
	reg := newCentralizedRegistry(t, 1)
	s, err := reg.CreateStream("c")
	require.NoError(t, err)

	vals, err := s.Sample(Random{}, Count(0))
	require.NoError(t, err)
	assert.Empty(t, vals)
	assert.True(t, s.Ready())

	_, err = s.Sample(Random{}, Count(2))
	require.NoError(t, err)
	_, err = s.Sample(Random{}, Count(2))
	assert.ErrorIs(t, err, ErrConsumedStream)

	s.Reset()
	_, err = s.Sample(Random{}, Count(-1))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewCentralizedStream("raw").Sample(Random{}, Count(1))
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.ErrorIs(t, s.Advance(-3), ErrInvalidTimestep)
}

func TestCentralized_ResetAllReseedsSharedGenerator(t *testing.T) {
	reg := newCentralizedRegistry(t, 9)
	s, err := reg.CreateStream("c")
	require.NoError(t, err)

	first, err := s.Sample(Random{}, Count(4))
	require.NoError(t, err)
	reg.ResetAll()
	again, err := s.Sample(Random{}, Count(4))
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestCentralized_BernoulliFilter(t *testing.T) {
	reg := newCentralizedRegistry(t, 1)
	s, err := reg.CreateStream("c")
	require.NoError(t, err)

	kept, err := s.BernoulliFilter([]UID{4, 8, 15}, Scalar(1))
	require.NoError(t, err)
	assert.Equal(t, []UID{4, 8, 15}, kept)
}

func TestCentralized_Standalone(t *testing.T) {
	s := NewCentralizedStream("alone")
	require.NoError(t, s.Initialize(nil, nil))
	vals, err := s.Sample(Uniform{Low: Scalar(2), High: Scalar(3)}, Count(5))
	require.NoError(t, err)
	for _, v := range vals {
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestCentralized_FailedDrawAndResetTimestep(t *testing.T) {
	reg := newCentralizedRegistry(t, 2)
	s, err := reg.CreateStream("c")
	require.NoError(t, err)

	_, err = s.Sample(Uniform{Low: Scalar(1), High: Scalar(0)}, Count(3))
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.True(t, s.Ready())

	require.NoError(t, s.Advance(4))
	s.Reset()
	assert.Equal(t, 0, s.(*CentralizedStream).ti)
}

func TestCentralized_BernoulliPerAgent(t *testing.T) {
	reg := newCentralizedRegistry(t, 3)
	s, err := reg.CreateStream("c")
	require.NoError(t, err)

	got, err := s.Bernoulli(UIDs{7, 7, 2}, PerAgent([]float64{1, 0, 1}))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, got)
}
