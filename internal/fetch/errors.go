package fetch

import (
	"fmt"
)

type FetchErrorCause string

const (
	ErrCauseRequest        FetchErrorCause = "invalid request"
	ErrCauseNetworkFailure FetchErrorCause = "network failure"
	ErrCauseStatus         FetchErrorCause = "unexpected status"
	ErrCauseReadBody       FetchErrorCause = "failed to read response body"
	ErrCauseCache          FetchErrorCause = "cache failure"
)

// FetchError describes a failed request. Nothing is cached for a failed request.
type FetchError struct {
	URL        string
	StatusCode int
	Cause      FetchErrorCause
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetching %s: %s %d", e.URL, e.Cause, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetching %s: %s: %v", e.URL, e.Cause, e.Err)
	default:
		return fmt.Sprintf("fetching %s: %s", e.URL, e.Cause)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
