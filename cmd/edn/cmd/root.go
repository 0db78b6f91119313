package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "edn",
		Short:        "edn",
		SilenceUsage: true,
		Long:         `CLI tool for reading, formatting and validating Extensible Data Notation (EDN) text.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}

	cfgFile string
	verbose bool
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".edn-cli.yaml", "path to config file controlling reader feature toggles")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return rootCmd.Execute()
}

func init() {
}
