package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kouma-root/polly-go"
)

// voteCmd casts a vote on a poll option.
var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Cast a vote on a poll",
	Long: `Cast a vote for one option of a poll.

Voting requires authentication. Pass a token obtained via 'polly login'
with --token, or configure credentials in the config file and the CLI
logs in for you.

Example:
  polly vote --poll 1 --option 2 --token $TOKEN
  polly vote --poll 1 --option 2 -c polly.yaml`,
	RunE: runVote,
}

func init() {
	rootCmd.AddCommand(voteCmd)

	voteCmd.Flags().Int64("poll", 0, "poll ID (required)")
	voteCmd.Flags().Int64("option", 0, "option ID (required)")
	voteCmd.Flags().String("token", "", "bearer token from 'polly login'")
	_ = voteCmd.MarkFlagRequired("poll")
	_ = voteCmd.MarkFlagRequired("option")
}

func runVote(cmd *cobra.Command, args []string) error {
	client, cfg, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	pollID, _ := cmd.Flags().GetInt64("poll")
	optionID, _ := cmd.Flags().GetInt64("option")

	ctx, cancel := opContext()
	defer cancel()

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		if cfg.Credentials.Username == "" {
			return errors.New("--token or config credentials are required to vote")
		}
		tok, err := client.Login(ctx, cfg.Credentials.Username, cfg.Credentials.Password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		token = tok.AccessToken
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		if vote := client.Quiet().Vote(ctx, token, pollID, optionID); vote != nil {
			fmt.Printf("Vote %d recorded for option %d on poll %d\n", vote.ID, vote.OptionID, pollID)
		}
		return nil
	}

	vote, err := client.Vote(ctx, token, pollID, optionID)
	if err != nil {
		switch {
		case errors.Is(err, polly.ErrUnauthorized):
			return errors.New("not authorized: token is missing, expired, or invalid")
		case errors.Is(err, polly.ErrNotFound):
			return fmt.Errorf("poll %d or option %d not found", pollID, optionID)
		}
		return err
	}

	fmt.Printf("Vote %d recorded for option %d on poll %d\n", vote.ID, vote.OptionID, pollID)
	return nil
}
