// Package router is the boundary orchestrator over the dispatch engine. It
// inspects an incoming body to decide single-call vs batch-call mode, applies
// the batch-size policy, fans out to the dispatcher per item preserving input
// order, and reports every produced failure once through the onError hook.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/morezero/method-gateway/pkg/dispatch"
)

const logPrefix = "router:router"

// BatchRoute is the path segment that selects batch mode. A method registered
// under this exact name is unreachable in single-call mode.
const BatchRoute = "batch"

// StatusIntent tells the transport adapter whether the response body is a
// success or error envelope. The adapter owns the mapping to transport
// status codes.
type StatusIntent string

const (
	IntentSuccess StatusIntent = "success"
	IntentError   StatusIntent = "error"
)

// Result is the routed response: a serialized envelope plus the intent the
// transport adapter maps to a status code. ErrorKind is set when the whole
// response is an error envelope.
type Result struct {
	StatusIntent StatusIntent
	ErrorKind    string
	Body         []byte
}

// ErrorHook receives every failure the router produces, exactly once per
// failure, together with the originating request. Invoked synchronously and
// fire-and-forget: the router neither catches its panics nor lets it alter
// the response.
type ErrorHook func(err *dispatch.CallError, req *dispatch.Request)

// Config wires a Router.
type Config struct {
	Registry     *dispatch.Registry
	BatchMaxSize int
	OnError      ErrorHook
}

// Router routes one decoded request body to the dispatch engine.
type Router struct {
	dispatcher   *dispatch.Dispatcher
	batchMaxSize int
	onError      ErrorHook
}

// New creates a Router from the given config.
func New(cfg Config) *Router {
	return &Router{
		dispatcher:   dispatch.NewDispatcher(cfg.Registry),
		batchMaxSize: cfg.BatchMaxSize,
		onError:      cfg.OnError,
	}
}

// Route processes one request. The request path (with any transport mount
// prefix already stripped) is either the batch route or a method name.
// Route always returns a well-formed result; failures never propagate.
func (ro *Router) Route(ctx context.Context, req *dispatch.Request) *Result {
	name := strings.Trim(req.Path, "/")
	if name == BatchRoute {
		return ro.routeBatch(ctx, req)
	}
	return ro.routeSingle(ctx, name, req)
}

func (ro *Router) routeSingle(ctx context.Context, name string, req *dispatch.Request) *Result {
	params, ok := req.Body.(map[string]any)
	if !ok {
		return ro.reject(req, "Unexpected body, expected method params")
	}

	outcome := ro.dispatcher.Dispatch(ctx, name, params, req)
	if outcome.Failed() {
		ro.notify(outcome.Err, req)
		return ro.result(IntentError, outcome.Err.Kind, dispatch.EncodeFailure(outcome.Err))
	}
	return ro.result(IntentSuccess, "", dispatch.EncodeSuccess(outcome.Value))
}

// batchCall is one well-formed batch item.
type batchCall struct {
	method string
	params map[string]any
}

func (ro *Router) routeBatch(ctx context.Context, req *dispatch.Request) *Result {
	items, ok := req.Body.([]any)
	if !ok {
		return ro.reject(req, "Unexpected body, expected array of methods")
	}

	calls := make([]batchCall, len(items))
	for i, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			return ro.reject(req, "Unexpected body, expected array of methods")
		}
		method, ok := item["method"].(string)
		if !ok {
			return ro.reject(req, "Unexpected body, expected array of methods")
		}
		call := batchCall{method: method}
		if p, present := item["params"]; present {
			params, ok := p.(map[string]any)
			if !ok {
				return ro.reject(req, "Unexpected body, expected array of methods")
			}
			call.params = params
		}
		calls[i] = call
	}

	if len(calls) > ro.batchMaxSize {
		return ro.reject(req, "Unexpected size of batch")
	}

	// Fan out concurrently; each call writes only its own slot so input order
	// is preserved without shared aggregation state.
	outcomes := make([]dispatch.Outcome, len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call batchCall) {
			defer wg.Done()
			outcomes[i] = ro.dispatcher.Dispatch(ctx, call.method, call.params, req)
		}(i, call)
	}
	wg.Wait()

	envelopes := make([]any, len(outcomes))
	for i, outcome := range outcomes {
		if outcome.Failed() {
			ro.notify(outcome.Err, req)
		}
		envelopes[i] = dispatch.EncodeOutcome(outcome)
	}

	// Past the shape/size gate the batch container is always a success
	// envelope; per-item failures live inside the array.
	return ro.result(IntentSuccess, "", dispatch.EncodeSuccess(envelopes))
}

// reject reports a request-level BAD_REQUEST before any dispatch happens.
func (ro *Router) reject(req *dispatch.Request, message string) *Result {
	err := dispatch.NewCallError(dispatch.KindBadRequest, message)
	ro.notify(err, req)
	return ro.result(IntentError, err.Kind, dispatch.EncodeFailure(err))
}

func (ro *Router) notify(err *dispatch.CallError, req *dispatch.Request) {
	if ro.onError != nil {
		ro.onError(err, req)
	}
}

func (ro *Router) result(intent StatusIntent, errorKind string, envelope any) *Result {
	body, err := json.Marshal(envelope)
	if err != nil {
		// Only reachable when an action returns a value encoding/json cannot
		// represent; the wire contract still requires one envelope.
		slog.Error(fmt.Sprintf("%s - envelope encode: %v", logPrefix, err))
		return &Result{
			StatusIntent: IntentError,
			ErrorKind:    dispatch.KindInternalError,
			Body:         []byte(`{"error":{"type":"INTERNAL_ERROR","message":"Response encoding failed"}}`),
		}
	}
	return &Result{StatusIntent: intent, ErrorKind: errorKind, Body: body}
}
