package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/agent-sim/agent-sim/sim/streams"
	"github.com/agent-sim/agent-sim/sim/sweep"
	"github.com/agent-sim/agent-sim/sim/trace"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

func printHeader(w io.Writer, format string, a ...any) {
	cyan.Fprintf(w, "=== %s ===\n", fmt.Sprintf(format, a...))
}

// printTraceSummary reports per-stream draw counts and how many values each
// draw generated per value returned.
func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	printHeader(w, "Draw Trace")
	fmt.Fprintf(w, "Draws                : %d\n", ts.TotalDraws)
	fmt.Fprintf(w, "Values Generated     : %d\n", ts.TotalDrawn)
	fmt.Fprintf(w, "Overdraw mean/p95/max: %.2f / %.2f / %.2f\n", ts.MeanOverdraw, ts.P95Overdraw, ts.MaxOverdraw)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STREAM\tDRAWS\tREQUESTED\tGENERATED")
	for _, s := range ts.Streams {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Stream, s.Draws, s.Requested, s.Drawn)
	}
	tw.Flush()
}

// printComparisons reports scenario - baseline statistics and, where both modes
// ran, the spread ratio that common random numbers buy.
func printComparisons(w io.Writer, cmps []sweep.Comparison) {
	printHeader(w, "Scenario - Baseline Final Prevalence")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tMULTIPLIER\tN\tMEAN DIFF\tSTD DIFF")
	for _, c := range cmps {
		fmt.Fprintf(tw, "%s\t%g\t%d\t%+.4f\t%.4f\n", c.Mode, c.Multiplier, c.N, c.MeanDiff, c.StdDiff)
	}
	tw.Flush()

	std := make(map[float64]map[streams.StreamMode]float64)
	var mults []float64
	for _, c := range cmps {
		if std[c.Multiplier] == nil {
			std[c.Multiplier] = make(map[streams.StreamMode]float64)
			mults = append(mults, c.Multiplier)
		}
		std[c.Multiplier][c.Mode] = c.StdDiff
	}
	for _, m := range mults {
		multi, okM := std[m][streams.ModeMultiStream]
		central, okC := std[m][streams.ModeCentralized]
		if !okM || !okC {
			continue
		}
		switch {
		case multi == 0 && central == 0:
			fmt.Fprintf(w, "x%g: no spread in either mode\n", m)
		case multi == 0:
			green.Fprintf(w, "x%g: no multistream spread, centralized std %.4f\n", m, central)
		case multi < central:
			green.Fprintf(w, "x%g: multistream spread is %.2fx smaller than centralized\n", m, central/multi)
		default:
			yellow.Fprintf(w, "x%g: multistream spread is not smaller than centralized (%.4f vs %.4f)\n", m, multi, central)
		}
	}
}

// printDraws lists one value per requested agent.
func printDraws(w io.Writer, name string, ti int, uids []int64, vals []float64) {
	printHeader(w, "Stream %q at ti=%d", name, ti)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UID\tVALUE")
	for i, uid := range uids {
		fmt.Fprintf(tw, "%d\t%v\n", uid, vals[i])
	}
	tw.Flush()
}
