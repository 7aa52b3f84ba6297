package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queuenet",
	Short: "Discrete-event simulator for networks of G/G/c/K queues",
	Long: `queuenet simulates a network of finite-capacity, multi-server queues
connected by probabilistic routing edges and reports steady-state occupancy
distributions and loss counts. Runs are fully deterministic for a given
configuration and seed.`,
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
