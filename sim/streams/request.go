package streams

import "fmt"

// Basis classifies a draw request by how its size was expressed.
type Basis int

const (
	// BasisCount asks for N independent values.
	BasisCount Basis = iota
	// BasisUIDs asks for one value per agent identifier.
	BasisUIDs
	// BasisMask asks for values at the true positions of a population mask.
	BasisMask
)

func (b Basis) String() string {
	switch b {
	case BasisCount:
		return "count"
	case BasisUIDs:
		return "uids"
	case BasisMask:
		return "mask"
	default:
		return fmt.Sprintf("basis(%d)", int(b))
	}
}

// Size is the single positional argument of every draw: a Count, UIDs or a Mask.
// Distribution parameters are never passed through Size; they are named fields of
// the Sampler.
type Size interface {
	basis() Basis
}

// Count requests N values in one contiguous draw.
type Count int

// UIDs requests one value per agent, returned in the order given.
type UIDs []UID

// Mask requests values for the true positions of a fixed population ordering.
type Mask []bool

func (Count) basis() Basis { return BasisCount }
func (UIDs) basis() Basis  { return BasisUIDs }
func (Mask) basis() Basis  { return BasisMask }

// ParseSize normalizes a loosely typed size argument. Integers become a Count,
// identifier slices become UIDs and bool slices become a Mask. Non-integer numbers
// are rejected with ErrInvalidSize; nil and anything else with ErrAmbiguousArgument.
func ParseSize(arg any) (Size, error) {
	switch v := arg.(type) {
	case nil:
		return nil, ErrAmbiguousArgument
	case Size:
		return v, nil
	case int:
		return Count(v), nil
	case int32:
		return Count(v), nil
	case int64:
		return Count(v), nil
	case float32, float64:
		return nil, fmt.Errorf("%w: count must be an integer, got %v", ErrInvalidSize, v)
	case []UID:
		return UIDs(v), nil
	case []int64:
		uids := make(UIDs, len(v))
		for i, id := range v {
			uids[i] = UID(id)
		}
		return uids, nil
	case []int:
		uids := make(UIDs, len(v))
		for i, id := range v {
			uids[i] = UID(id)
		}
		return uids, nil
	case []bool:
		return Mask(v), nil
	default:
		return nil, fmt.Errorf("%w: unsupported argument type %T", ErrAmbiguousArgument, arg)
	}
}

// DrawRequest is the canonical form of one sampling call. It lives only for the
// duration of that call.
type DrawRequest struct {
	Basis Basis
	// Size is the number of underlying values that must be generated.
	Size int
	// Positions indexes the underlying draw, in request order. Nil means every
	// drawn value is returned as is.
	Positions []int
}

// Empty reports whether the request can be answered without touching a generator.
func (r DrawRequest) Empty() bool {
	return r.Size == 0
}

// Requested returns the number of values handed back to the caller.
func (r DrawRequest) Requested() int {
	if r.Positions == nil {
		return r.Size
	}
	return len(r.Positions)
}

// Select picks the requested values out of a full underlying draw.
func (r DrawRequest) Select(vals []float64) []float64 {
	if r.Positions == nil {
		return vals
	}
	out := make([]float64, len(r.Positions))
	for i, pos := range r.Positions {
		out[i] = vals[pos]
	}
	return out
}

// ResolveRequest turns a Size into a DrawRequest.
//
// With a SlotTable, identifiers draw max(slot)+1 values and read their own slot,
// and masks draw one value per population member, so every agent consumes the
// same position regardless of who else was requested. With a nil SlotTable the
// request resolves positionally: identifiers and true mask entries each draw one
// value in call order.
func ResolveRequest(size Size, slots SlotTable) (DrawRequest, error) {
	switch v := size.(type) {
	case nil:
		return DrawRequest{}, ErrAmbiguousArgument
	case Count:
		if v < 0 {
			return DrawRequest{}, fmt.Errorf("%w: count %d is negative", ErrInvalidSize, int(v))
		}
		return DrawRequest{Basis: BasisCount, Size: int(v)}, nil
	case Mask:
		if len(v) == 0 {
			return DrawRequest{Basis: BasisMask}, nil
		}
		positions := make([]int, 0, len(v))
		for i, selected := range v {
			if selected {
				positions = append(positions, i)
			}
		}
		if slots == nil {
			return DrawRequest{Basis: BasisMask, Size: len(positions)}, nil
		}
		return DrawRequest{Basis: BasisMask, Size: len(v), Positions: positions}, nil
	case UIDs:
		if len(v) == 0 {
			return DrawRequest{Basis: BasisUIDs}, nil
		}
		if slots == nil {
			return DrawRequest{Basis: BasisUIDs, Size: len(v)}, nil
		}
		positions := make([]int, len(v))
		maxSlot := int64(-1)
		for i, uid := range v {
			slot, ok := slots.SlotOf(uid)
			if !ok || slot < 0 {
				return DrawRequest{}, fmt.Errorf("%w: uid %d", ErrUnassignedSlot, uid)
			}
			positions[i] = int(slot)
			maxSlot = max(maxSlot, slot)
		}
		return DrawRequest{Basis: BasisUIDs, Size: int(maxSlot) + 1, Positions: positions}, nil
	default:
		return DrawRequest{}, fmt.Errorf("%w: unsupported size %T", ErrAmbiguousArgument, size)
	}
}
