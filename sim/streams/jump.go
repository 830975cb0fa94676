package streams

import (
	"math/bits"

	"gonum.org/v1/gonum/mathext/prng"
)

// state128 is the 128-bit LCG state behind math/rand/v2's PCG.
type state128 struct {
	hi, lo uint64
}

// Multiplier and increment of the PCG-DXSM LCG in math/rand/v2.
var (
	pcgMul = state128{hi: 2549297995355413924, lo: 4865540595714422341}
	pcgInc = state128{hi: 6364136223846793005, lo: 1442695040888963407}
)

func mul128(a, b state128) state128 {
	hi, lo := bits.Mul64(a.lo, b.lo)
	hi += a.hi*b.lo + a.lo*b.hi
	return state128{hi: hi, lo: lo}
}

func add128(a, b state128) state128 {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	hi, _ := bits.Add64(a.hi, b.hi, carry)
	return state128{hi: hi, lo: lo}
}

func (s state128) isZero() bool {
	return s.hi == 0 && s.lo == 0
}

func (s state128) shr1() state128 {
	return state128{hi: s.hi >> 1, lo: s.lo>>1 | s.hi<<63}
}

// step advances the state by one generator output.
func (s state128) step() state128 {
	return add128(mul128(s, pcgMul), pcgInc)
}

// advance moves the state forward by delta outputs in O(log delta) using
// Brown's arbitrary-stride LCG recurrence.
func (s state128) advance(delta state128) state128 {
	accMul, accInc := state128{lo: 1}, state128{}
	curMul, curInc := pcgMul, pcgInc
	for !delta.isZero() {
		if delta.lo&1 == 1 {
			accMul = mul128(accMul, curMul)
			accInc = add128(mul128(accInc, curMul), curInc)
		}
		curInc = mul128(add128(curMul, state128{lo: 1}), curInc)
		curMul = mul128(curMul, curMul)
		delta = delta.shr1()
	}
	return add128(mul128(accMul, s), accInc)
}

// JumpLog2 is the log2 of the jump distance: each timestep owns a window of
// 2^64 consecutive generator outputs, so draws from different timesteps never
// overlap unless a single timestep consumes more than 2^64 values.
const JumpLog2 = 64

// jumpDelta returns ti jumps, i.e. ti·2^64 generator outputs.
func jumpDelta(ti int) state128 {
	return state128{hi: uint64(ti)}
}

// seedState expands a 64-bit seed into an initial 128-bit generator state.
func seedState(seed int64) state128 {
	sm := prng.NewSplitMix64(uint64(seed))
	hi := sm.Uint64()
	return state128{hi: hi, lo: sm.Uint64()}
}
