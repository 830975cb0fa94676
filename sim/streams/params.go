package streams

import "fmt"

// Param is a distribution parameter: one value shared by every draw, or one value
// per requested agent. The zero Param is the scalar 0.
type Param struct {
	value  float64
	values []float64
}

// Scalar returns a parameter shared by every draw.
func Scalar(v float64) Param {
	return Param{value: v}
}

// PerAgent returns a parameter with one value per requested agent, in request
// order, or one value per underlying draw.
func PerAgent(vs []float64) Param {
	if vs == nil {
		vs = []float64{}
	}
	return Param{values: vs}
}

// IsScalar reports whether p holds a single shared value.
func (p Param) IsScalar() bool {
	return p.values == nil
}

// Len returns the number of per-agent values, or 1 for a scalar.
func (p Param) Len() int {
	if p.values == nil {
		return 1
	}
	return len(p.values)
}

// At returns the value that applies to underlying draw i.
func (p Param) At(i int) float64 {
	if p.values == nil {
		return p.value
	}
	return p.values[i]
}

// NamedParam pairs a Param with the name used in error messages.
type NamedParam struct {
	Name string
	Param
}

// expandParams brings every per-agent parameter to one value per underlying draw.
// An array matching the number of requested agents is scattered to the requested
// positions; an array matching the underlying draw is used as is. Any other length
// is rejected rather than broadcast.
//
// Positions nobody asked for are filled with the first requested agent's value,
// so they stay inside the distribution's domain and consume the generator the same
// way a requested draw would. Their values are never returned. Agents sharing a
// slot must agree on the value at that slot.
func expandParams(params []NamedParam, req DrawRequest) ([]Param, error) {
	out := make([]Param, len(params))
	for i, np := range params {
		p := np.Param
		switch {
		case p.IsScalar():
			out[i] = p
		case req.Positions != nil && len(p.values) == len(req.Positions):
			full, err := scatter(np, req)
			if err != nil {
				return nil, err
			}
			out[i] = Param{values: full}
		case len(p.values) == req.Size:
			out[i] = p
		default:
			return nil, fmt.Errorf("%w: %s has %d values, want %d (requested) or %d (drawn)",
				ErrParameterLength, np.Name, len(p.values), req.Requested(), req.Size)
		}
	}
	return out, nil
}

func scatter(np NamedParam, req DrawRequest) ([]float64, error) {
	full := make([]float64, req.Size)
	set := make([]bool, req.Size)
	filler := np.values[0]
	for j := range full {
		full[j] = filler
	}
	for j, pos := range req.Positions {
		v := np.values[j]
		if set[pos] && full[pos] != v {
			return nil, fmt.Errorf("%w: %s has conflicting values %v and %v for slot %d",
				ErrParameterLength, np.Name, full[pos], v, pos)
		}
		full[pos] = v
		set[pos] = true
	}
	return full, nil
}
