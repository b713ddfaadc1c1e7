package polly

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the rejections the API signals with specific status
// codes. Match them with [errors.Is] against any error returned by a
// client operation.
var (
	// ErrUsernameTaken indicates registration was rejected because the
	// username already exists. The API signals this with a 400.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrUnauthorized indicates the request lacked a valid bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested poll or option does not exist.
	ErrNotFound = errors.New("not found")
)

// maxDetailPreview caps how much of a non-JSON error body is carried into
// the error message.
const maxDetailPreview = 200

// APIError is returned for any response with a non-2xx status code.
//
// The Detail field holds the server's human-readable message, extracted
// from the standard {"detail": ...} error body when present. Body
// preserves the raw response for callers that need more than the detail.
//
// APIError participates in [errors.Is] matching: a 400 matches
// [ErrUsernameTaken], a 401 matches [ErrUnauthorized], and a 404 matches
// [ErrNotFound].
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Detail is the message extracted from the response body.
	Detail string

	// Body is the raw response body, limited to 1MB.
	Body []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error: status %d: %s", e.StatusCode, e.Detail)
}

// Is maps the status codes this API uses for well-known rejections onto
// the package's sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUsernameTaken:
		return e.StatusCode == http.StatusBadRequest
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// newAPIError builds an APIError from a failed response.
func newAPIError(statusCode int, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Detail:     errorDetail(statusCode, body),
		Body:       body,
	}
}

// errorDetail extracts a human-readable message from an error response.
//
// The API wraps error messages as {"detail": "..."}; detail can also be a
// structured value for validation errors. Falls back to a body preview,
// then to the standard status text, so the result is never empty.
func errorDetail(statusCode int, body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			if s != "" {
				return s
			}
		} else {
			return fmt.Sprintf("%v", payload.Detail)
		}
	}

	if preview := strings.TrimSpace(string(body)); preview != "" {
		if len(preview) > maxDetailPreview {
			preview = preview[:maxDetailPreview]
		}
		return preview
	}

	return http.StatusText(statusCode)
}
