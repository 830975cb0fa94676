package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/agent-sim/agent-sim/sim/streams"
	"github.com/agent-sim/agent-sim/sim/sweep"
)

var (
	// CLI flags for sweep
	numSeeds    int       // Seeds per scenario, starting at --seed
	multipliers []float64 // Transmission-rate multipliers compared against 1
	sweepModes  []string  // Stream modes to compare
	workers     int       // Concurrent runs
)

// buildSweep turns the CLI flags into a sweep. Seeds are --seed, --seed+1, ...
func buildSweep(cmd *cobra.Command) (*sweep.Sweep, error) {
	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		return nil, err
	}
	sw := &sweep.Sweep{
		Base:        cfg,
		Multipliers: multipliers,
		Workers:     workers,
	}
	for i := 0; i < numSeeds; i++ {
		sw.Seeds = append(sw.Seeds, cfg.Seed+int64(i))
	}
	for _, name := range sweepModes {
		mode, err := streams.ParseStreamMode(name)
		if err != nil {
			return nil, err
		}
		sw.Modes = append(sw.Modes, mode)
	}
	return sw, nil
}

// sweepCmd compares scenarios against their same-seed baselines in each mode
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a seed × scenario × mode grid and compare scenarios to baseline",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		sw, err := buildSweep(cmd)
		if err != nil {
			logrus.Fatalf("Invalid sweep configuration: %v", err)
		}
		logrus.Infof("Starting sweep: seeds=%d multipliers=%v modes=%v", len(sw.Seeds), multipliers, sweepModes)

		runs, err := sw.Run(cmd.Context())
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		cmps, err := sweep.Compare(runs)
		if err != nil {
			logrus.Fatalf("Unable to compare runs: %v", err)
		}
		printComparisons(cmd.OutOrStdout(), cmps)
	},
}

func init() {
	addSharedFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&numSeeds, "seeds", 10, "Number of seeds per scenario, starting at --seed")
	sweepCmd.Flags().Float64SliceVar(&multipliers, "multipliers", []float64{1.5}, "Comma-separated transmission-rate multipliers")
	sweepCmd.Flags().StringSliceVar(&sweepModes, "modes", []string{"multistream", "centralized"}, "Comma-separated stream modes")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent runs (0 = GOMAXPROCS)")

	rootCmd.AddCommand(sweepCmd)
}
