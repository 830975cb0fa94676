package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResults_Prevalence(t *testing.T) {
	r := newResults(3)
	r.Alive = []int{10, 0, 8}
	r.Infected = []int{2, 0, 4}
	assert.Equal(t, []float64{0.2, 0, 0.5}, r.Prevalence())
	assert.Equal(t, 0.5, r.FinalPrevalence())
}

func TestResults_Empty(t *testing.T) {
	r := newResults(0)
	assert.Equal(t, 0.0, r.FinalPrevalence())
	assert.Equal(t, 0, r.CumulativeInfections())

	var buf bytes.Buffer
	r.Print(&buf)
	assert.Contains(t, buf.String(), "Steps                : 0")
}

func TestResults_Print(t *testing.T) {
	r := newResults(2)
	r.Alive = []int{4, 4}
	r.Infected = []int{1, 2}
	r.NewInfections = []int{1, 1}
	r.Deaths = []int{0, 1}

	var buf bytes.Buffer
	r.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "Final Prevalence     : 0.5000")
	assert.Contains(t, out, "Peak Prevalence      : 0.5000")
	assert.Contains(t, out, "Cumulative Infections: 2")
	assert.Contains(t, out, "Deaths               : 1")
}
