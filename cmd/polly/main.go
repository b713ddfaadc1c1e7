// Package main is the entry point for the polly CLI.
//
// The SDK can be used as a library or through this CLI, which wraps each
// API operation in a subcommand.
//
// Usage:
//
//	polly register -u alice -p s3cret   # Create an account
//	polly polls --all                   # List every poll
//	polly vote --poll 1 --option 2      # Cast a vote
//	polly results --poll 1              # Show a poll's tally
//	polly validate -c polly.yaml        # Validate configuration
//	polly version                       # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "polly",
	Short: "A command-line client for the Polly polling API",
	Long: `polly is a command-line client for the Polly polling API.

It wraps the API's operations - registering accounts, listing polls,
casting votes, and reading results - as subcommands.

Quick start:
  1. Point the CLI at your server: polly polls --base-url http://localhost:8000
  2. Or create a config file (polly.yaml) and pass -c polly.yaml

Example config:
  base_url: http://localhost:8000
  timeout: 5s
  credentials:
    username: alice
    password: ${POLLY_PASSWORD}`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this polly binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("polly %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// connection settings shared by every subcommand
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file")
	rootCmd.PersistentFlags().String("base-url", "", "API root address (overrides config)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "per-request timeout (overrides config)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress request failures instead of exiting non-zero")
}
