package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/agent-sim/agent-sim/sim"
	"github.com/agent-sim/agent-sim/sim/model"
	"github.com/agent-sim/agent-sim/sim/trace"
)

var (
	// CLI flags shared by run, sweep and draw
	seed       int64  // Base seed of the run's stream registry
	logLevel   string // Log verbosity level
	configPath string // Optional YAML run configuration
	streamMode string // "multistream" or "centralized"
	numAgents  int    // Founder population size

	// CLI flags for run
	numSteps   int    // Number of timesteps
	traceLevel string // "none" or "draws"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "agent-sim",
	Short: "Agent-based simulator with reproducible per-agent random number streams",
}

// setupLogging applies --log. An unknown level is fatal.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveRunConfig loads --config when given, otherwise the defaults, and
// applies every flag the user set explicitly on top.
func resolveRunConfig(cmd *cobra.Command) (sim.RunConfig, error) {
	cfg := sim.DefaultRunConfig()
	if configPath != "" {
		loaded, err := sim.LoadRunConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("mode") {
		cfg.Mode = streamMode
	}
	if flags.Changed("agents") {
		cfg.Agents = numAgents
	}
	if flags.Changed("steps") {
		cfg.Steps = numSteps
	}
	if flags.Changed("trace") {
		cfg.Trace = traceLevel
	}
	return cfg, cfg.Validate()
}

// runCmd executes one simulation using the configuration file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		logrus.Infof("Starting simulation: seed=%d mode=%s agents=%d steps=%d",
			cfg.Seed, cfg.Mode, cfg.Agents, cfg.Steps)
		startTime := time.Now()

		s, err := sim.NewSimulator(cfg, model.Default(cfg.Model)...)
		if err != nil {
			logrus.Fatalf("Unable to create simulator: %v", err)
		}
		if err := s.Run(cmd.Context()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		out := cmd.OutOrStdout()
		printHeader(out, "Run %s (seed=%d, mode=%s)", s.ID, cfg.Seed, s.Registry.Mode())
		s.Results.Print(out)
		if s.Trace != nil {
			printTraceSummary(out, trace.Summarize(s.Trace))
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// Execute runs the CLI root command. An interrupt cancels running simulations.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// addSharedFlags registers the flags common to every simulation command.
func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML run configuration")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Base seed of the stream registry")
	cmd.Flags().StringVar(&streamMode, "mode", "multistream", "Stream mode (multistream, centralized)")
	cmd.Flags().IntVar(&numAgents, "agents", 1000, "Number of founder agents")
	cmd.Flags().IntVar(&numSteps, "steps", 50, "Number of timesteps")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addSharedFlags(runCmd)
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Draw tracing (none, draws)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
