package leetcode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a remote call failure.
type ErrorKind string

// The fixed error taxonomy. Every failure a remote call surfaces carries
// exactly one of these kinds.
const (
	KindAuth      ErrorKind = "AUTH"
	KindCSRF      ErrorKind = "CSRF"
	KindRateLimit ErrorKind = "RATE_LIMIT"
	KindNetwork   ErrorKind = "NETWORK"
	KindNotFound  ErrorKind = "NOT_FOUND"
	KindUnknown   ErrorKind = "UNKNOWN"
)

// APIError is the classified form of a remote call failure. The Retryable
// flag is the sole input to the retry policy; Message is suitable for direct
// display to the user.
type APIError struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int // 0 when the failure happened below the HTTP layer
	Retryable  bool
	Err        error // underlying cause, if any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("%s (%s, HTTP %d)", e.Message, e.Kind, e.HTTPStatus)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Kind)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a classified, retryable failure.
// Unclassified errors are never retried.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	return false
}

// KindOf returns the classification of err, or KindUnknown for errors that
// did not come out of this package.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// classifyStatus maps a non-200 HTTP response to the taxonomy. A 403 whose
// body hints at anti-forgery failure is CSRF (retryable after the cached
// token is invalidated); a bare 401/403 is a hard auth failure.
func classifyStatus(status int, body []byte) *APIError {
	lower := strings.ToLower(string(body))
	switch {
	case status == http.StatusForbidden && strings.Contains(lower, "csrf"):
		return &APIError{
			Kind:       KindCSRF,
			Message:    "anti-forgery token rejected",
			HTTPStatus: status,
			Retryable:  true,
		}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &APIError{
			Kind:       KindAuth,
			Message:    "authentication rejected by remote service",
			HTTPStatus: status,
			Retryable:  false,
		}
	case status == http.StatusTooManyRequests:
		return &APIError{
			Kind:       KindRateLimit,
			Message:    "rate limited by remote service",
			HTTPStatus: status,
			Retryable:  true,
		}
	case status >= 500:
		return &APIError{
			Kind:       KindNetwork,
			Message:    "remote service error",
			HTTPStatus: status,
			Retryable:  true,
		}
	default:
		return &APIError{
			Kind:       KindNetwork,
			Message:    fmt.Sprintf("unexpected HTTP status %d", status),
			HTTPStatus: status,
			Retryable:  false,
		}
	}
}

// classifyTransport maps a connection-level failure (timeout, DNS, refused)
// to a retryable NETWORK error. If the caller's context has ended the failure
// is theirs, not the remote's, so it is not retryable. Per-request timeouts
// also surface as context.DeadlineExceeded, which is why this checks the
// caller's context rather than the error chain.
func classifyTransport(ctx context.Context, err error) *APIError {
	if cerr := ctx.Err(); cerr != nil {
		return &APIError{
			Kind:      KindNetwork,
			Message:   "request cancelled",
			Retryable: false,
			Err:       cerr,
		}
	}
	return &APIError{
		Kind:      KindNetwork,
		Message:   "connection to remote service failed",
		Retryable: true,
		Err:       err,
	}
}

// classifyGraphQL maps GraphQL-level errors to the taxonomy. The remote
// reports missing entities and unknown users through this channel.
func classifyGraphQL(errs []graphqlError) *APIError {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	joined := strings.Join(msgs, "; ")

	lower := strings.ToLower(joined)
	if strings.Contains(lower, "does not exist") || strings.Contains(lower, "not found") {
		return &APIError{
			Kind:      KindNotFound,
			Message:   joined,
			Retryable: false,
		}
	}
	return &APIError{
		Kind:      KindUnknown,
		Message:   joined,
		Retryable: false,
	}
}
