package types

import (
	"errors"
	"fmt"
)

// FailureKind doubles as the machine-readable error code returned by the API,
// distinct from the HTTP status the routes layer picks for it.
type FailureKind string

const (
	InvalidInput        FailureKind = "BAD_REQUEST"
	NotFound            FailureKind = "NOT_FOUND"
	UpstreamUnavailable FailureKind = "UPSTREAM_UNAVAILABLE"
	UpstreamError       FailureKind = "UPSTREAM_ERROR"
	MalformedAdvice     FailureKind = "MALFORMED_ADVICE"
	Timeout             FailureKind = "TIMEOUT"
)

// Failure is the tagged result threaded through every pipeline stage instead
// of untyped errors. Detail is safe to log and to return to callers: it never
// carries the credential or a full raw upstream payload.
type Failure struct {
	Kind   FailureKind
	Detail string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Detail, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

func (f *Failure) Unwrap() error { return f.Err }

func NewFailure(kind FailureKind, detail string) *Failure {
	return &Failure{Kind: kind, Detail: detail}
}

func WrapFailure(kind FailureKind, detail string, err error) *Failure {
	return &Failure{Kind: kind, Detail: detail, Err: err}
}

// KindOf unwraps err to its Failure kind, if it has one.
func KindOf(err error) (FailureKind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}
