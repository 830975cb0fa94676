package streams

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws from one distribution family. Every stream kind hands a Sampler
// its own generator and parameters already expanded to one value per underlying
// draw, so implementations never see slots, masks or identifiers.
type Sampler interface {
	// Name identifies the distribution in traces and errors.
	Name() string
	// Params lists the distribution's parameters in the order Draw receives them.
	Params() []NamedParam
	// Draw generates n values from src. params has the same order as Params and
	// each entry is either scalar or exactly n long.
	Draw(src rand.Source, params []Param, n int) ([]float64, error)
}

// Random draws uniformly from [0, 1).
type Random struct{}

func (Random) Name() string         { return "random" }
func (Random) Params() []NamedParam { return nil }

func (Random) Draw(src rand.Source, _ []Param, n int) ([]float64, error) {
	r := rand.New(src)
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Float64()
	}
	return out, nil
}

// Uniform draws uniformly from [Low, High).
type Uniform struct {
	Low, High Param
}

func (Uniform) Name() string { return "uniform" }

func (u Uniform) Params() []NamedParam {
	return []NamedParam{{"low", u.Low}, {"high", u.High}}
}

func (Uniform) Draw(src rand.Source, params []Param, n int) ([]float64, error) {
	low, high := params[0], params[1]
	out := make([]float64, n)
	for i := range out {
		lo, hi := low.At(i), high.At(i)
		if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return nil, fmt.Errorf("%w: uniform low=%v high=%v", ErrInvalidParameter, lo, hi)
		}
		out[i] = distuv.Uniform{Min: lo, Max: hi, Src: src}.Rand()
	}
	return out, nil
}

// Normal draws from N(Loc, Scale²).
type Normal struct {
	Loc, Scale Param
}

func (Normal) Name() string { return "normal" }

func (d Normal) Params() []NamedParam {
	return []NamedParam{{"loc", d.Loc}, {"scale", d.Scale}}
}

func (Normal) Draw(src rand.Source, params []Param, n int) ([]float64, error) {
	loc, scale := params[0], params[1]
	out := make([]float64, n)
	for i := range out {
		if s := scale.At(i); s < 0 || math.IsNaN(s) {
			return nil, fmt.Errorf("%w: normal scale %v", ErrInvalidParameter, s)
		}
		out[i] = distuv.Normal{Mu: loc.At(i), Sigma: scale.At(i), Src: src}.Rand()
	}
	return out, nil
}

// LogNormal draws exp(X) with X ~ N(Mean, Sigma²).
type LogNormal struct {
	Mean, Sigma Param
}

func (LogNormal) Name() string { return "lognormal" }

func (d LogNormal) Params() []NamedParam {
	return []NamedParam{{"mean", d.Mean}, {"sigma", d.Sigma}}
}

func (LogNormal) Draw(src rand.Source, params []Param, n int) ([]float64, error) {
	mean, sigma := params[0], params[1]
	out := make([]float64, n)
	for i := range out {
		if s := sigma.At(i); s < 0 || math.IsNaN(s) {
			return nil, fmt.Errorf("%w: lognormal sigma %v", ErrInvalidParameter, s)
		}
		out[i] = distuv.LogNormal{Mu: mean.At(i), Sigma: sigma.At(i), Src: src}.Rand()
	}
	return out, nil
}

// Poisson draws counts with rate Lam.
type Poisson struct {
	Lam Param
}

func (Poisson) Name() string { return "poisson" }

func (d Poisson) Params() []NamedParam {
	return []NamedParam{{"lam", d.Lam}}
}

func (Poisson) Draw(src rand.Source, params []Param, n int) ([]float64, error) {
	lam := params[0]
	out := make([]float64, n)
	for i := range out {
		l := lam.At(i)
		if l < 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, fmt.Errorf("%w: poisson lam %v", ErrInvalidParameter, l)
		}
		out[i] = distuv.Poisson{Lambda: l, Src: src}.Rand()
	}
	return out, nil
}

// NegativeBinomial draws the number of failures before N successes with success
// probability P, as a gamma-Poisson mixture.
type NegativeBinomial struct {
	N, P Param
}

func (NegativeBinomial) Name() string { return "negative_binomial" }

func (d NegativeBinomial) Params() []NamedParam {
	return []NamedParam{{"n", d.N}, {"p", d.P}}
}

func (NegativeBinomial) Draw(src rand.Source, params []Param, n int) ([]float64, error) {
	size, prob := params[0], params[1]
	out := make([]float64, n)
	for i := range out {
		k, p := size.At(i), prob.At(i)
		if k <= 0 || !(p > 0 && p <= 1) {
			return nil, fmt.Errorf("%w: negative binomial n=%v p=%v", ErrInvalidParameter, k, p)
		}
		if p == 1 {
			continue
		}
		lam := distuv.Gamma{Alpha: k, Beta: p / (1 - p), Src: src}.Rand()
		out[i] = distuv.Poisson{Lambda: lam, Src: src}.Rand()
	}
	return out, nil
}

// Bernoulli draws 1 with probability P and 0 otherwise. Each value consumes
// exactly one uniform, so slot alignment never depends on P. Sampled directly, a
// per-agent P must agree between agents sharing a slot; the streams' Bernoulli
// methods have no such restriction.
type Bernoulli struct {
	P Param
}

func (Bernoulli) Name() string { return "bernoulli" }

func (d Bernoulli) Params() []NamedParam {
	return []NamedParam{{"p", d.P}}
}

func (Bernoulli) Draw(src rand.Source, params []Param, n int) ([]float64, error) {
	p := params[0]
	r := rand.New(src)
	out := make([]float64, n)
	for i := range out {
		if r.Float64() < p.At(i) {
			out[i] = 1
		}
	}
	return out, nil
}

// bernoulliUniforms is the draw behind Stream.Bernoulli: the same single uniform
// per value as Bernoulli, compared against p by the caller after slot selection.
type bernoulliUniforms struct{}

func (bernoulliUniforms) Name() string         { return "bernoulli" }
func (bernoulliUniforms) Params() []NamedParam { return nil }

func (bernoulliUniforms) Draw(src rand.Source, _ []Param, n int) ([]float64, error) {
	return Random{}.Draw(src, nil, n)
}

// Integers draws integers uniformly from [Low, High).
type Integers struct {
	Low, High Param
}

func (Integers) Name() string { return "integers" }

func (d Integers) Params() []NamedParam {
	return []NamedParam{{"low", d.Low}, {"high", d.High}}
}

func (Integers) Draw(src rand.Source, params []Param, n int) ([]float64, error) {
	low, high := params[0], params[1]
	r := rand.New(src)
	out := make([]float64, n)
	for i := range out {
		lo, hi := math.Trunc(low.At(i)), math.Trunc(high.At(i))
		if !(hi > lo) {
			return nil, fmt.Errorf("%w: integers low=%v high=%v", ErrInvalidParameter, lo, hi)
		}
		out[i] = lo + float64(r.Int64N(int64(hi-lo)))
	}
	return out, nil
}
