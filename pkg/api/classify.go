package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Classified failures of a third-party call. Callers branch on these with
// errors.Is/errors.As instead of sniffing status codes or error text.
var (
	ErrAccessDenied = errors.New("access denied")
	ErrRateLimited  = errors.New("rate limited")
	ErrNotFound     = errors.New("not found")
)

type TransportError struct {
	Code    int
	Message string
}

func (e TransportError) Error() string {
	if e.Code == 0 {
		return e.Message
	}

	return fmt.Sprintf("transport error (status %d): %s", e.Code, e.Message)
}

// ClassifyStatus maps the response status code to a classified failure. A 2xx
// response classifies as nil.
func (r *Response) ClassifyStatus() error {
	switch {
	case r.Code >= 200 && r.Code < 300:
		return nil
	case r.Code == http.StatusForbidden:
		return ErrAccessDenied
	case r.Code == http.StatusTooManyRequests:
		return ErrRateLimited
	case r.Code == http.StatusNotFound:
		return ErrNotFound
	default:
		return TransportError{Code: r.Code, Message: string(r.RawBody)}
	}
}
