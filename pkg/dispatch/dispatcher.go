// Package dispatch implements the method dispatch engine: it resolves a
// method name to a registered definition, validates untyped params against
// the method's contract, invokes the action, and converts success or failure
// into a dispatch outcome. Failures never escape Dispatch as errors or
// panics; every call produces exactly one Outcome.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/morezero/method-gateway/pkg/shape"
)

const logPrefix = "dispatch:dispatcher"

// Outcome is the result of one method dispatch: a value or a CallError,
// never both. Created once per invocation and not mutated afterwards.
type Outcome struct {
	Value any
	Err   *CallError
}

// Success wraps a method result value.
func Success(value any) Outcome {
	return Outcome{Value: value}
}

// Fail wraps a call failure.
func Fail(err *CallError) Outcome {
	return Outcome{Err: err}
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Dispatcher resolves and invokes registry methods.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a Dispatcher over the given registry.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// Dispatch resolves name, validates rawParams against the method's contract
// and invokes the action. Declared failures (*CallError) pass through
// verbatim; any other error or panic from the action is reported as
// INTERNAL_ERROR with the method name prefixed so batch callers can
// attribute it.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, rawParams map[string]any, req *Request) Outcome {
	slog.Debug(fmt.Sprintf("%s - method=%s", logPrefix, name))

	m, ok := d.registry.Lookup(name)
	if !ok {
		return Fail(NewCallError(KindBadRequest, "Unknown method: "+name))
	}

	params := rawParams
	if m.Params != nil {
		validated, fail := m.Params.Validate(rawParams)
		if fail != nil {
			return Fail(validationError(name, m.Params, fail))
		}
		params = validated
	}

	value, err := invoke(ctx, m, params, req)
	if err != nil {
		var ce *CallError
		if errors.As(err, &ce) {
			return Fail(ce)
		}
		return Fail(&CallError{
			Kind:    KindInternalError,
			Message: name + ": " + err.Error(),
			Data:    map[string]any{},
		})
	}
	return Success(value)
}

// invoke runs the action, converting a panic into an error so a misbehaving
// method cannot take down sibling calls in a batch.
func invoke(ctx context.Context, m Method, params map[string]any, req *Request) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error(fmt.Sprintf("%s - action panic: %v", logPrefix, r))
			err = fmt.Errorf("%v", r)
		}
	}()
	return m.Action(ctx, params, req)
}

func validationError(name string, contract shape.Contract, fail *shape.Failure) *CallError {
	return &CallError{
		Kind:    KindBadRequest,
		Message: fmt.Sprintf("%s: Validation failed:\n%s.\n%s", name, fail.Detail(), contract.Describe()),
		Data: map[string]any{
			"name":    "ValidationError",
			"code":    "CONTENT_INCORRECT",
			"details": fail.Details(),
		},
	}
}
