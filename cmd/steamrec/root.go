package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "steamrec",
	Short: "Steam game recommendation service",
	Long: `steamrec recommends a single Steam game from tag filters, free-text
input, or a player's library, with rate limiting and duplicate avoidance.

Quick start:
  steamrec serve    # Start the API server`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "steamrec.yaml", "config file path")
}
