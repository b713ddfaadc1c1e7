// Standalone mock Polly API server for exercising the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/polly polls --all
//	go run ./cmd/polly register -u alice -p s3cret
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kouma-root/polly-go/example/mockpolly"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseURL, err := mockpolly.StartMockPollyServer(ctx, "localhost:8000")
	if err != nil {
		slog.Error("failed to start mock server", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Mock Polly API listening on %s\n", baseURL)
	fmt.Println("Seeded with an admin account (admin/admin) and three polls")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	<-ctx.Done()
	fmt.Println("shutting down")
}
