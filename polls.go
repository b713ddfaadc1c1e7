package polly

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Polls fetches one page of polls.
//
// It issues exactly one GET to /polls?skip=<skip>&limit=<limit> and
// returns the decoded records in server order; nothing is re-sorted.
// A negative skip is clamped to 0 and a non-positive limit falls back to
// [DefaultPageSize]; any other values are passed through for the server
// to validate.
func (c *Client) Polls(ctx context.Context, skip, limit int) ([]Poll, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var polls []Poll
	err := c.call(ctx, "polls", callRequest{
		method: http.MethodGet,
		path:   "/polls",
		query:  query,
	}, &polls)
	if err != nil {
		return nil, err
	}
	return polls, nil
}

// AllPolls fetches every poll by paging through /polls sequentially.
//
// Pages are requested with skip advancing by batchSize (or
// [DefaultPageSize] when batchSize is non-positive) starting at 0. The
// accumulated slice preserves page order and within-page order. Fetching
// stops at the first page shorter than batchSize, which includes the
// empty page.
//
// If a page fetch fails mid-way, AllPolls returns the polls accumulated
// so far together with the error, so callers can choose to use the
// partial result or discard it.
//
// Termination relies on the server eventually returning a short page; no
// maximum iteration bound is enforced.
func (c *Client) AllPolls(ctx context.Context, batchSize int) ([]Poll, error) {
	if batchSize <= 0 {
		batchSize = DefaultPageSize
	}

	var all []Poll
	for skip := 0; ; skip += batchSize {
		batch, err := c.Polls(ctx, skip, batchSize)
		if err != nil {
			return all, err
		}

		all = append(all, batch...)

		// a short page means the server has no more records
		if len(batch) < batchSize {
			return all, nil
		}
	}
}
