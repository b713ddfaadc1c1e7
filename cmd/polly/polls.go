package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kouma-root/polly-go"
)

// pollsCmd lists polls.
var pollsCmd = &cobra.Command{
	Use:   "polls",
	Short: "List polls",
	Long: `List polls and print a human-readable summary.

By default one page is fetched; --skip and --limit control the window.
With --all, pages are fetched repeatedly until the server runs out of
records (--limit then sets the page size).

Example:
  polly polls
  polly polls --skip 20 --limit 10
  polly polls --all`,
	RunE: runPolls,
}

func init() {
	rootCmd.AddCommand(pollsCmd)

	pollsCmd.Flags().Int("skip", 0, "number of polls to skip")
	pollsCmd.Flags().Int("limit", 0, "page size (defaults to the config's page_size)")
	pollsCmd.Flags().Bool("all", false, "fetch every poll, not just one page")
}

func runPolls(cmd *cobra.Command, args []string) error {
	client, cfg, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit == 0 {
		limit = cfg.PageSize
	}
	all, _ := cmd.Flags().GetBool("all")

	ctx, cancel := opContext()
	defer cancel()

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		var polls []polly.Poll
		if all {
			polls = client.Quiet().AllPolls(ctx, limit)
		} else {
			polls = client.Quiet().Polls(ctx, skip, limit)
		}
		fmt.Print(polly.FormatPollsSummary(polls))
		return nil
	}

	var polls []polly.Poll
	if all {
		polls, err = client.AllPolls(ctx, limit)
	} else {
		polls, err = client.Polls(ctx, skip, limit)
	}
	if err != nil {
		return err
	}

	fmt.Print(polly.FormatPollsSummary(polls))
	return nil
}
