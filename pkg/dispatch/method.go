package dispatch

import (
	"context"

	"github.com/morezero/method-gateway/pkg/shape"
)

// Request is the transport-level request a method call originated from. The
// engine reads Path and Body; the rest is metadata for method authors and the
// error-notification hook.
type Request struct {
	// Verb is the transport operation, e.g. "POST" for HTTP or "COMMS" for
	// broker messages.
	Verb string
	// Path selects the method in single-call mode. Method names may contain
	// slashes, so the whole remaining path is the name.
	Path string
	// Body is the decoded JSON value, or nil when the body was absent or not
	// valid JSON.
	Body any
	// RemoteAddr identifies the caller (client address or broker subject).
	RemoteAddr string
}

// ActionFunc is a method body. It receives the validated params and the
// originating request. Returning a *CallError is a declared failure and is
// passed through to the caller verbatim; any other error (or a panic) is
// reported as INTERNAL_ERROR.
type ActionFunc func(ctx context.Context, params map[string]any, req *Request) (any, error)

// Method pairs a parameter contract with an executable action. A nil Params
// contract accepts any params unvalidated.
type Method struct {
	Params shape.Contract
	Action ActionFunc
}
