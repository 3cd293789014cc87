// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind tags the failure modes of an OpenAlex call so callers can branch
// on kind instead of matching error strings.
type ErrorKind string

const (
	// KindTimeout: the request timed out or the transport failed.
	KindTimeout ErrorKind = "timeout"

	// KindHTTP: the API answered with a non-2xx status.
	KindHTTP ErrorKind = "http"

	// KindDecode: the response body was not the expected JSON.
	KindDecode ErrorKind = "decode"

	// KindNotFound: the call succeeded but matched nothing.
	KindNotFound ErrorKind = "not_found"
)

// FetchError is the error type returned by all Client calls.
type FetchError struct {
	Kind   ErrorKind
	Op     string // "search authors" or "list works"
	Status int    // HTTP status, set for KindHTTP
	Err    error  // underlying cause, may be nil
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("openalex: %s: HTTP %d", e.Op, e.Status)
	case KindNotFound:
		return fmt.Sprintf("openalex: %s: no match", e.Op)
	default:
		return fmt.Sprintf("openalex: %s: %v", e.Op, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a FetchError of kind not_found.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindNotFound
}

// httpError builds a KindHTTP FetchError from a response status.
func httpError(op string, status int) *FetchError {
	return &FetchError{Kind: KindHTTP, Op: op, Status: status, Err: fmt.Errorf("%s", http.StatusText(status))}
}
