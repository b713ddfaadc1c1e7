package polly

import (
	"fmt"
	"time"
)

// Timestamp wraps [time.Time] to tolerate the API's datetime encoding.
//
// The server serialises datetimes as ISO-8601 without a timezone offset
// (e.g. "2024-01-15T10:30:00"), which the standard library's RFC 3339
// decoder rejects. Timestamp accepts both forms; offset-less values are
// interpreted as UTC. A zero Timestamp means the field was absent or null.
type Timestamp struct {
	time.Time
}

// timestampLayouts are the accepted wire formats, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// User is the account record returned by [Client.Register].
type User struct {
	// ID is the server-assigned account identifier.
	ID int64 `json:"id"`

	// Username is the registered account name.
	Username string `json:"username"`
}

// Credentials is the request payload for registration.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the bearer token returned by [Client.Login].
//
// Pass Token.AccessToken to [Client.Vote] to authenticate requests.
type Token struct {
	// AccessToken is the JWT presented as "Authorization: Bearer <token>".
	AccessToken string `json:"access_token"`

	// TokenType is the token scheme, always "bearer" for this API.
	TokenType string `json:"token_type"`
}

// PollOption is a single selectable answer within a [Poll].
type PollOption struct {
	// ID identifies the option; pass it to [Client.Vote].
	ID int64 `json:"id"`

	// Text is the option's display text.
	Text string `json:"text"`

	// PollID is the owning poll's identifier.
	PollID int64 `json:"poll_id"`
}

// Poll is one poll record as returned by [Client.Polls].
//
// Fields mirror the API's schema. Records are decoded defensively: fields
// the server omits stay at their zero values, and [FormatPollsSummary]
// renders only the fields that are present.
type Poll struct {
	// ID is the poll's identifier.
	ID int64 `json:"id"`

	// Question is the poll's question text.
	Question string `json:"question"`

	// CreatedAt is when the poll was created. Zero if the server
	// omitted the field.
	CreatedAt Timestamp `json:"created_at"`

	// OwnerID identifies the account that created the poll.
	OwnerID int64 `json:"owner_id"`

	// Options are the poll's selectable answers, in server order.
	Options []PollOption `json:"options"`
}

// Vote records a successfully cast vote, returned by [Client.Vote].
type Vote struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	OptionID  int64     `json:"option_id"`
	CreatedAt Timestamp `json:"created_at"`
}

// OptionResult is the tally for a single option within [PollResults].
type OptionResult struct {
	OptionID  int64  `json:"option_id"`
	Text      string `json:"text"`
	VoteCount int64  `json:"vote_count"`
}

// PollResults is a poll's vote tally, returned by [Client.Results].
//
// Results arrive in server order; [FormatPollResults] sorts them by vote
// count for display.
type PollResults struct {
	PollID   int64          `json:"poll_id"`
	Question string         `json:"question"`
	Results  []OptionResult `json:"results"`
}
