package githubclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v72/github"
)

// Upstream failure subtypes, preserved where the API distinguishes them.
const (
	SubtypeNotFound    = "not_found"
	SubtypeForbidden   = "forbidden"
	SubtypeRateLimited = "rate_limited"
	SubtypeConflict    = "conflict"
	SubtypeUnknown     = "error"
)

// APIError wraps a GitHub API failure with its subtype and HTTP status.
type APIError struct {
	Subtype    string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: %s: %v", e.Subtype, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// FailureSubtype returns the upstream subtype for dispatch forwarding.
func (e *APIError) FailureSubtype() string {
	return e.Subtype
}

// wrapErr converts a go-github error into an APIError.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return &APIError{Subtype: SubtypeRateLimited, StatusCode: http.StatusForbidden, Err: err}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		subtype := SubtypeUnknown
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			subtype = SubtypeNotFound
		case http.StatusForbidden:
			subtype = SubtypeForbidden
		case http.StatusConflict:
			subtype = SubtypeConflict
		case http.StatusTooManyRequests:
			subtype = SubtypeRateLimited
		}
		return &APIError{Subtype: subtype, StatusCode: respErr.Response.StatusCode, Err: err}
	}

	return &APIError{Subtype: SubtypeUnknown, Err: err}
}
