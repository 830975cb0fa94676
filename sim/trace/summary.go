package trace

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// StreamSummary aggregates the draws of one stream.
type StreamSummary struct {
	Stream    string
	Draws     int
	Requested int
	Drawn     int
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDraws    int
	TotalDrawn    int
	MeanOverdraw  float64
	P95Overdraw   float64
	MaxOverdraw   float64
	UniqueStreams int
	Streams       []StreamSummary // sorted by stream name
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil || len(st.Draws) == 0 {
		return summary
	}

	byStream := make(map[string]*StreamSummary)
	overdraws := make([]float64, 0, len(st.Draws))
	for _, d := range st.Draws {
		s, ok := byStream[d.Stream]
		if !ok {
			s = &StreamSummary{Stream: d.Stream}
			byStream[d.Stream] = s
		}
		s.Draws++
		s.Requested += d.Requested
		s.Drawn += d.Drawn

		summary.TotalDraws++
		summary.TotalDrawn += d.Drawn
		if d.Requested > 0 {
			overdraws = append(overdraws, d.Overdraw())
		}
	}

	if len(overdraws) > 0 {
		// Inputs are non-empty and the percentile is in range, so stats cannot fail here.
		summary.MeanOverdraw, _ = stats.Mean(overdraws)
		summary.P95Overdraw, _ = stats.Percentile(overdraws, 95)
		summary.MaxOverdraw, _ = stats.Max(overdraws)
	}

	for _, s := range byStream {
		summary.Streams = append(summary.Streams, *s)
	}
	sort.Slice(summary.Streams, func(i, j int) bool {
		return summary.Streams[i].Stream < summary.Streams[j].Stream
	})
	summary.UniqueStreams = len(summary.Streams)

	return summary
}
