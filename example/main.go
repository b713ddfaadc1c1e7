package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kouma-root/polly-go"
	"github.com/kouma-root/polly-go/example/mockpolly"
	"github.com/kouma-root/polly-go/metrics"
)

func main() {
	// cancel mid-demo on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start the in-process mock API on an ephemeral port (see mockpolly)
	baseURL, err := mockpolly.StartMockPollyServer(ctx, "localhost:0")
	if err != nil {
		slog.Error("failed to start mock server", "error", err)
		os.Exit(1)
	}

	// collect request metrics through the observer hook
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)

	client, err := polly.New(
		polly.WithBaseURL(baseURL),
		polly.WithObserver(rec.Observe),
	)
	if err != nil {
		slog.Error("failed to create client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   polly-go Demo                                       ║")
	fmt.Println("  ║                                                       ║")
	fmt.Printf("  ║   Mock API: %-42s║\n", baseURL)
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Walkthrough:                                        ║")
	fmt.Println("  ║   • register an account and log in                    ║")
	fmt.Println("  ║   • list every poll (paginated, 2 per page)           ║")
	fmt.Println("  ║   • cast a vote and show the tally                    ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	user, err := client.Register(ctx, "demo", "demo-password")
	if err != nil && !errors.Is(err, polly.ErrUsernameTaken) {
		slog.Error("registration failed", "error", err)
		os.Exit(1)
	}
	if err == nil {
		fmt.Printf("Registered %q (ID %d)\n\n", user.Username, user.ID)
	}

	token, err := client.Login(ctx, "demo", "demo-password")
	if err != nil {
		slog.Error("login failed", "error", err)
		os.Exit(1)
	}

	// a small batch size so the seeded polls take more than one page
	polls, err := client.AllPolls(ctx, 2)
	if err != nil {
		slog.Error("fetching polls failed", "error", err)
		os.Exit(1)
	}
	fmt.Print(polly.FormatPollsSummary(polls))

	if len(polls) > 0 && len(polls[0].Options) > 0 {
		poll := polls[0]
		if _, err := client.Vote(ctx, token.AccessToken, poll.ID, poll.Options[0].ID); err != nil {
			slog.Error("vote failed", "error", err)
			os.Exit(1)
		}

		results, err := client.Results(ctx, poll.ID)
		if err != nil {
			slog.Error("fetching results failed", "error", err)
			os.Exit(1)
		}
		fmt.Println()
		fmt.Print(polly.FormatPollResults(results))
	}

	printRequestCounts(reg)
}

// printRequestCounts renders the request counters the observer collected
// over the demo run.
func printRequestCounts(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		slog.Error("failed to gather metrics", "error", err)
		return
	}

	fmt.Println()
	fmt.Println("Requests seen by the metrics observer:")
	for _, mf := range families {
		if mf.GetName() != "polly_client_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			fmt.Printf("  {%s} %.0f\n", strings.Join(labels, ", "), m.GetCounter().GetValue())
		}
	}
}
