// Package rest provides HTTP execution for the polly client.
//
// This package is internal to polly and handles the mechanics of a single
// API round trip: building the request, applying the per-request timeout,
// setting the standard headers, and reading the response with a size cap.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with pooling, timeout, and size limits
//   - [Request]: Description of one call to execute
//   - [Response]: Structured result including latency and correlation ID
//
// Users of the polly library should not need to interact with this
// package directly. Requests are issued through the main polly package.
package rest
