package polly

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatPollsSummary renders polls as a human-readable multi-line summary.
//
// Pure function: no I/O, no failure modes. Records are rendered
// tolerantly; a field at its zero value (absent in the server response)
// drops its line rather than printing a placeholder. An empty or nil
// slice renders as "No polls found."
//
// Example output:
//
//	Found 2 polls:
//	--------------------------------------------------
//	ID: 1
//	Question: Favourite language?
//	Created: 2024-01-15T10:30:00Z
//	Owner ID: 7
//	Options (2):
//	  - Go (ID: 1)
//	  - Rust (ID: 2)
//	--------------------------------------------------
//	...
func FormatPollsSummary(polls []Poll) string {
	if len(polls) == 0 {
		return "No polls found.\n"
	}

	rule := strings.Repeat("-", 50)

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d polls:\n", len(polls))
	b.WriteString(rule + "\n")

	for _, poll := range polls {
		if poll.ID != 0 {
			fmt.Fprintf(&b, "ID: %d\n", poll.ID)
		}
		if poll.Question != "" {
			fmt.Fprintf(&b, "Question: %s\n", poll.Question)
		}
		if !poll.CreatedAt.IsZero() {
			fmt.Fprintf(&b, "Created: %s\n", poll.CreatedAt.Format(time.RFC3339))
		}
		if poll.OwnerID != 0 {
			fmt.Fprintf(&b, "Owner ID: %d\n", poll.OwnerID)
		}

		fmt.Fprintf(&b, "Options (%d):\n", len(poll.Options))
		for _, opt := range poll.Options {
			line := "  -"
			if opt.Text != "" {
				line += " " + opt.Text
			}
			if opt.ID != 0 {
				line += fmt.Sprintf(" (ID: %d)", opt.ID)
			}
			b.WriteString(line + "\n")
		}

		b.WriteString(rule + "\n")
	}

	return b.String()
}

// FormatPollResults renders a poll's vote tally as human-readable text.
//
// Pure function: no I/O, no failure modes. Options are sorted by vote
// count descending, ties broken by option ID ascending so output is
// deterministic. Each option shows its vote count and share of the total
// with one decimal; with zero total votes every share renders as 0.0%.
// Missing fields are omitted, and a zero-value tally renders as
// "No results available."
func FormatPollResults(results PollResults) string {
	if results.PollID == 0 && results.Question == "" && len(results.Results) == 0 {
		return "No results available.\n"
	}

	var b strings.Builder

	switch {
	case results.PollID != 0 && results.Question != "":
		fmt.Fprintf(&b, "Poll #%d: %s\n", results.PollID, results.Question)
	case results.PollID != 0:
		fmt.Fprintf(&b, "Poll #%d\n", results.PollID)
	default:
		fmt.Fprintf(&b, "%s\n", results.Question)
	}
	b.WriteString(strings.Repeat("=", 50) + "\n")

	if len(results.Results) == 0 {
		b.WriteString("No votes cast yet.\n")
		return b.String()
	}

	sorted := make([]OptionResult, len(results.Results))
	copy(sorted, results.Results)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].VoteCount != sorted[j].VoteCount {
			return sorted[i].VoteCount > sorted[j].VoteCount
		}
		return sorted[i].OptionID < sorted[j].OptionID
	})

	var total int64
	for _, opt := range sorted {
		total += opt.VoteCount
	}

	fmt.Fprintf(&b, "Total votes: %d\n", total)
	b.WriteString(strings.Repeat("-", 30) + "\n")

	for i, opt := range sorted {
		line := fmt.Sprintf("%d.", i+1)
		if opt.Text != "" {
			line += " " + opt.Text
		}
		b.WriteString(line + "\n")

		share := 0.0
		if total > 0 {
			share = float64(opt.VoteCount) / float64(total) * 100
		}
		fmt.Fprintf(&b, "   Votes: %d (%.1f%%)\n", opt.VoteCount, share)
	}

	return b.String()
}
