// Package polly provides a thin Go client for the Polly API, a small
// poll-and-vote service.
//
// The client wraps the API's REST endpoints with typed operations: account
// registration and login, paginated poll listing, vote casting, and result
// retrieval. It is designed as an SDK-first library with immutable
// configuration, explicit error returns, and composable setup via the
// functional options pattern.
//
// # Quick Start
//
// Create a client and fetch polls:
//
//	client, err := polly.New(polly.WithBaseURL("http://localhost:8000"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	polls, err := client.Polls(ctx, 0, 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(polly.FormatPollsSummary(polls))
//
// # Configuration
//
// The client uses the functional options pattern for configuration:
//
//	client, err := polly.New(
//	    polly.WithBaseURL("https://polls.example.com"),
//	    polly.WithTimeout(5 * time.Second),
//	    polly.WithLogger(logger),
//	)
//
// All options validate eagerly; New returns an error rather than deferring
// failures to the first request.
//
// # Error Handling
//
// Every operation exists in two forms. The [Client] methods propagate
// failures as errors: transport problems are wrapped, and non-2xx responses
// surface as [*APIError] values carrying the status code and the server's
// detail message. Well-known rejections can be matched with [errors.Is]
// against [ErrUsernameTaken], [ErrUnauthorized], and [ErrNotFound].
//
// The [QuietClient] obtained from [Client.Quiet] suppresses failures
// instead: each method logs the error and returns an absent value (nil),
// for call sites that treat the API as best-effort.
//
// # Observability
//
// [WithObserver] registers hooks that see a [CallInfo] for every round
// trip, including failed ones. The metrics subpackage provides a
// Prometheus-backed observer built on this hook.
//
// # Architecture
//
// The package is split as follows:
//
//   - polly (this package): typed operations, models, errors, formatters
//   - internal/rest: HTTP execution with connection pooling and body limits
//   - config: YAML configuration for the CLI
//   - metrics: Prometheus instrumentation via the observer hook
//   - cmd/polly: command-line interface over the SDK
//
// The internal packages are not part of the public API and may change
// without notice.
package polly
