package sweep

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/agent-sim/agent-sim/sim/streams"
)

// Comparison summarizes scenario − baseline final prevalence over seeds for one
// mode and multiplier. Common random numbers show up as a smaller StdDiff.
type Comparison struct {
	Mode       streams.StreamMode
	Multiplier float64
	N          int
	MeanDiff   float64
	StdDiff    float64
}

type modeSeed struct {
	mode streams.StreamMode
	seed int64
}

type modeMult struct {
	mode streams.StreamMode
	mult float64
}

// Compare pairs every scenario run with the baseline run of the same mode and
// seed. Scenario runs without a baseline are an error.
func Compare(runs []Run) ([]Comparison, error) {
	baseline := make(map[modeSeed]float64)
	for _, r := range runs {
		if r.Multiplier == Baseline {
			baseline[modeSeed{r.Mode, r.Seed}] = r.FinalPrevalence
		}
	}

	diffs := make(map[modeMult][]float64)
	for _, r := range runs {
		if r.Multiplier == Baseline {
			continue
		}
		base, ok := baseline[modeSeed{r.Mode, r.Seed}]
		if !ok {
			return nil, fmt.Errorf("compare: no baseline for mode=%s seed=%d", r.Mode, r.Seed)
		}
		k := modeMult{r.Mode, r.Multiplier}
		diffs[k] = append(diffs[k], r.FinalPrevalence-base)
	}

	out := make([]Comparison, 0, len(diffs))
	for k, d := range diffs {
		mean, err := stats.Mean(d)
		if err != nil {
			return nil, fmt.Errorf("compare: %w", err)
		}
		std, err := stats.StandardDeviation(d)
		if err != nil {
			return nil, fmt.Errorf("compare: %w", err)
		}
		out = append(out, Comparison{Mode: k.mode, Multiplier: k.mult, N: len(d), MeanDiff: mean, StdDiff: std})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mode != out[j].Mode {
			return out[i].Mode < out[j].Mode
		}
		return out[i].Multiplier < out[j].Multiplier
	})
	return out, nil
}
