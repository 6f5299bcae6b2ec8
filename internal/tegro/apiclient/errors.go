package apiclient

import (
	"fmt"
	"net/http"
	"time"
)

const (
	ReasonNetwork TransientReason = "network"
	ReasonDecode  TransientReason = "decode"
	ReasonRemote  TransientReason = "remote"
)

type TransientReason string

// TransientError is a failed attempt that may succeed when re-sent.
type TransientError struct {
	Reason TransientReason
	// Type and Desc are copied from a non-success API response.
	Type string
	Desc string
	Err  error
}

func (e *TransientError) Error() string {
	switch e.Reason {
	case ReasonRemote:
		return fmt.Sprintf("%s (type: %s)", e.Desc, e.Type)
	default:
		return fmt.Sprintf("%s failure: %v", e.Reason, e.Err)
	}
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is returned for any response status other than 200.
// It is never retried.
type HTTPStatusError struct {
	Code    int
	Body    []byte
	Message string
}

func newHTTPStatusError(code int, body []byte) *HTTPStatusError {
	msg := "HTTP status code is not 200"
	if code == http.StatusForbidden {
		msg = "access to the requested resource is forbidden"
	}
	return &HTTPStatusError{
		Code:    code,
		Body:    body,
		Message: msg,
	}
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: status code %d, response %q", e.Message, e.Code, e.Body)
}

// RetriesExceededError is returned once every attempt failed transiently.
type RetriesExceededError struct {
	Request string
	Time    time.Time
	Err     error
}

func (e *RetriesExceededError) Error() string {
	return fmt.Sprintf(
		"bad request, retries exceeded maximum at %s: %s: %v",
		e.Time.Format(time.TimeOnly),
		e.Request,
		e.Err,
	)
}

func (e *RetriesExceededError) Unwrap() error {
	return e.Err
}
