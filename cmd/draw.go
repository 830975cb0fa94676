package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/agent-sim/agent-sim/sim"
	"github.com/agent-sim/agent-sim/sim/people"
	"github.com/agent-sim/agent-sim/sim/streams"
)

var (
	// CLI flags for draw
	drawStream string  // Stream name
	drawUIDs   []int64 // Agents to draw for
	drawTi     int     // Timestep
	drawDist   string  // "random" or "bernoulli"
	drawP      float64 // Bernoulli probability
)

// drawValues reproduces one stream draw for the given agents outside a simulation.
// Founders only: agent k has slot k.
func drawValues(cfg sim.RunConfig, name string, uids []int64, ti int, dist string, p float64) ([]float64, error) {
	size, err := streams.ParseSize(uids)
	if err != nil {
		return nil, err
	}
	var d streams.Sampler
	switch dist {
	case "random":
		d = streams.Random{}
	case "bernoulli":
		d = streams.Bernoulli{P: streams.Scalar(p)}
	default:
		return nil, fmt.Errorf("unknown distribution %q", dist)
	}

	pop, err := people.New(cfg.Agents, cfg.SlotScale)
	if err != nil {
		return nil, err
	}
	streamCfg, err := cfg.StreamConfig()
	if err != nil {
		return nil, err
	}
	reg, err := sim.NewStreamRegistry(sim.NewSimulationKey(cfg.Seed), streamCfg, pop)
	if err != nil {
		return nil, err
	}
	s, err := reg.CreateStream(name)
	if err != nil {
		return nil, err
	}
	if err := reg.Advance(ti); err != nil {
		return nil, err
	}
	return s.Sample(d, size)
}

// drawCmd prints a stream's values for chosen agents, for checking that an
// agent sees the same numbers across scenarios
var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Print one stream's draws for chosen agents at a timestep",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		vals, err := drawValues(cfg, drawStream, drawUIDs, drawTi, drawDist, drawP)
		if err != nil {
			logrus.Fatalf("Draw failed: %v", err)
		}
		printDraws(cmd.OutOrStdout(), drawStream, drawTi, drawUIDs, vals)
	},
}

func init() {
	addSharedFlags(drawCmd)
	drawCmd.Flags().StringVar(&drawStream, "stream", "infection", "Stream name")
	drawCmd.Flags().Int64SliceVar(&drawUIDs, "uids", []int64{0}, "Comma-separated agent UIDs")
	drawCmd.Flags().IntVar(&drawTi, "ti", 0, "Timestep")
	drawCmd.Flags().StringVar(&drawDist, "dist", "random", "Distribution (random, bernoulli)")
	drawCmd.Flags().Float64Var(&drawP, "p", 0.5, "Bernoulli probability")

	rootCmd.AddCommand(drawCmd)
}
