// Package trace provides draw-trace recording for random stream analysis.
// This package has no dependencies on sim/ or sim/streams/; it stores pure data types.
package trace

// DrawRecord captures a single successful draw from a named stream.
type DrawRecord struct {
	Stream       string
	Timestep     int
	Distribution string
	Basis        string // "count", "uids" or "mask"
	Requested    int    // values returned to the caller
	Drawn        int    // underlying values generated
}

// Overdraw returns Drawn/Requested: the cost of slot indexing for this draw.
// 1 means nothing was wasted; 0 for a record that returned nothing.
func (r DrawRecord) Overdraw() float64 {
	if r.Requested == 0 {
		return 0
	}
	return float64(r.Drawn) / float64(r.Requested)
}
