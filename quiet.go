package polly

import "context"

// QuietClient mirrors [Client]'s operations with failures suppressed.
//
// Each method performs the same single request as its [Client] counterpart
// but never returns an error: the failure is written to the client's
// logger at Warn level and an absent value (nil) is returned instead.
// This is the right shape for best-effort call sites that have no recovery
// action; anywhere the failure matters, use the [Client] methods.
//
// A QuietClient shares its parent's connections, logger, and observers.
// Obtain one via [Client.Quiet].
type QuietClient struct {
	client *Client
}

// Quiet returns a view of the client whose operations suppress errors.
//
// The returned value is cheap to create and safe for concurrent use.
//
// Example:
//
//	polls := client.Quiet().Polls(ctx, 0, 10)
//	if polls == nil {
//	    // failure was already logged; fall back to cached copy, etc.
//	}
func (c *Client) Quiet() *QuietClient {
	return &QuietClient{client: c}
}

// Register creates a user account, returning nil if the call fails.
func (q *QuietClient) Register(ctx context.Context, username, password string) *User {
	user, err := q.client.Register(ctx, username, password)
	if err != nil {
		q.report("register", err)
		return nil
	}
	return &user
}

// Login exchanges credentials for a token, returning nil if the call fails.
func (q *QuietClient) Login(ctx context.Context, username, password string) *Token {
	token, err := q.client.Login(ctx, username, password)
	if err != nil {
		q.report("login", err)
		return nil
	}
	return &token
}

// Polls fetches one page of polls, returning nil if the call fails.
//
// A nil result is indistinguishable from a successful empty page; use
// [Client.Polls] when that distinction matters.
func (q *QuietClient) Polls(ctx context.Context, skip, limit int) []Poll {
	polls, err := q.client.Polls(ctx, skip, limit)
	if err != nil {
		q.report("polls", err)
		return nil
	}
	return polls
}

// AllPolls fetches every poll, returning whatever was accumulated before
// the first failure. The failure itself is logged and discarded.
func (q *QuietClient) AllPolls(ctx context.Context, batchSize int) []Poll {
	polls, err := q.client.AllPolls(ctx, batchSize)
	if err != nil {
		q.report("all_polls", err)
	}
	return polls
}

// Vote casts a vote, returning nil if the call fails.
func (q *QuietClient) Vote(ctx context.Context, token string, pollID, optionID int64) *Vote {
	vote, err := q.client.Vote(ctx, token, pollID, optionID)
	if err != nil {
		q.report("vote", err)
		return nil
	}
	return &vote
}

// Results retrieves a poll's tally, returning nil if the call fails.
func (q *QuietClient) Results(ctx context.Context, pollID int64) *PollResults {
	results, err := q.client.Results(ctx, pollID)
	if err != nil {
		q.report("results", err)
		return nil
	}
	return &results
}

// report writes a suppressed failure to the client's logger.
func (q *QuietClient) report(op string, err error) {
	q.client.logger.Warn("request failed",
		"operation", op,
		"error", err.Error(),
	)
}
