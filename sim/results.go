// Tracks per-step population and event counts of a run.

package sim

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
)

// Results holds one value per timestep for every channel. Modules add to the
// event channels; the simulator fills the population channels after each step.
type Results struct {
	Alive         []int // live agents at the end of the step
	Infected      []int // live infected agents at the end of the step
	NewInfections []int
	Recoveries    []int
	Deaths        []int
	Births        []int
}

func newResults(steps int) *Results {
	return &Results{
		Alive:         make([]int, steps),
		Infected:      make([]int, steps),
		NewInfections: make([]int, steps),
		Recoveries:    make([]int, steps),
		Deaths:        make([]int, steps),
		Births:        make([]int, steps),
	}
}

// Steps returns the number of recorded timesteps.
func (r *Results) Steps() int { return len(r.Alive) }

// Prevalence returns the infected share of the live population per step.
func (r *Results) Prevalence() []float64 {
	out := make([]float64, len(r.Alive))
	for i, n := range r.Alive {
		if n > 0 {
			out[i] = float64(r.Infected[i]) / float64(n)
		}
	}
	return out
}

// FinalPrevalence returns the prevalence after the last step, or 0 for an empty run.
func (r *Results) FinalPrevalence() float64 {
	p := r.Prevalence()
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1]
}

// CumulativeInfections returns the number of infections over the whole run.
func (r *Results) CumulativeInfections() int {
	total := 0
	for _, n := range r.NewInfections {
		total += n
	}
	return total
}

// Print writes a summary of the run to w.
func (r *Results) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Results ===")
	fmt.Fprintf(w, "Steps                : %d\n", r.Steps())
	if r.Steps() == 0 {
		return
	}
	last := r.Steps() - 1
	fmt.Fprintf(w, "Final Population     : %d\n", r.Alive[last])
	fmt.Fprintf(w, "Final Prevalence     : %.4f\n", r.FinalPrevalence())
	if mean, err := stats.Mean(r.Prevalence()); err == nil {
		fmt.Fprintf(w, "Mean Prevalence      : %.4f\n", mean)
	}
	if peak, err := stats.Max(r.Prevalence()); err == nil {
		fmt.Fprintf(w, "Peak Prevalence      : %.4f\n", peak)
	}
	fmt.Fprintf(w, "Cumulative Infections: %d\n", r.CumulativeInfections())
	fmt.Fprintf(w, "Recoveries           : %d\n", sum(r.Recoveries))
	fmt.Fprintf(w, "Deaths               : %d\n", sum(r.Deaths))
	fmt.Fprintf(w, "Births               : %d\n", sum(r.Births))
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
