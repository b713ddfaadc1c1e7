package polly

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kouma-root/polly-go/internal/rest"
)

// voteRequest is the body of POST /polls/{id}/vote.
type voteRequest struct {
	OptionID int64 `json:"option_id"`
}

// Vote casts a vote for an option on a poll.
//
// The call requires a bearer token obtained from [Client.Login]. A missing
// or invalid token yields an error matching [ErrUnauthorized]; an unknown
// poll or option yields one matching [ErrNotFound].
func (c *Client) Vote(ctx context.Context, token string, pollID, optionID int64) (Vote, error) {
	body, contentType, err := rest.JSONBody(voteRequest{OptionID: optionID})
	if err != nil {
		return Vote{}, fmt.Errorf("polly: vote: %w", err)
	}

	var vote Vote
	err = c.call(ctx, "vote", callRequest{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/polls/%d/vote", pollID),
		body:        body,
		contentType: contentType,
		headers:     map[string]string{"Authorization": "Bearer " + token},
	}, &vote)
	if err != nil {
		return Vote{}, err
	}
	return vote, nil
}

// Results retrieves the vote tally for a poll.
//
// No authentication is required. An unknown poll yields an error matching
// [ErrNotFound]. Use [FormatPollResults] to render the tally for display.
func (c *Client) Results(ctx context.Context, pollID int64) (PollResults, error) {
	var results PollResults
	err := c.call(ctx, "results", callRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("/polls/%d/results", pollID),
	}, &results)
	if err != nil {
		return PollResults{}, err
	}
	return results, nil
}
