package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queuenet-sim/queuenet-sim/sim/config"
)

var generatePath string // Where to write the generated configuration

// generateCmd writes the default configuration file as a starting point
// for editing.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.WriteDefault(generatePath); err != nil {
			logrus.Fatalf("Failed to generate configuration: %v", err)
		}
		logrus.Infof("Default configuration written to %s", generatePath)
	},
}

func init() {
	generateCmd.Flags().StringVar(&generatePath, "path", config.DefaultFilename, "Output path for the generated configuration")
	rootCmd.AddCommand(generateCmd)
}
