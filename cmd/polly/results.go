package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kouma-root/polly-go"
)

// resultsCmd shows a poll's vote tally.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show a poll's results",
	Long: `Fetch a poll's vote tally and print it sorted by vote count.

Example:
  polly results --poll 1`,
	RunE: runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().Int64("poll", 0, "poll ID (required)")
	_ = resultsCmd.MarkFlagRequired("poll")
}

func runResults(cmd *cobra.Command, args []string) error {
	client, _, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	pollID, _ := cmd.Flags().GetInt64("poll")

	ctx, cancel := opContext()
	defer cancel()

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		if results := client.Quiet().Results(ctx, pollID); results != nil {
			fmt.Print(polly.FormatPollResults(*results))
		}
		return nil
	}

	results, err := client.Results(ctx, pollID)
	if err != nil {
		if errors.Is(err, polly.ErrNotFound) {
			return fmt.Errorf("poll %d not found", pollID)
		}
		return err
	}

	fmt.Print(polly.FormatPollResults(results))
	return nil
}
