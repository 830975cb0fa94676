package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agent-sim/agent-sim/sim"
)

// configCmd prints the configuration `run` would use with the same flags
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved run configuration as YAML",
	Long:  "Load --config (or the defaults), apply CLI overrides, validate, and write the result to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		data, err := marshalRunConfig(cfg)
		if err != nil {
			logrus.Fatalf("YAML marshal failed: %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

func marshalRunConfig(cfg sim.RunConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func init() {
	addSharedFlags(configCmd)
	configCmd.Flags().StringVar(&traceLevel, "trace", "none", "Draw tracing (none, draws)")

	rootCmd.AddCommand(configCmd)
}
