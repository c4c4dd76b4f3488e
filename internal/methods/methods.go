// Package methods defines the method set the gateway binary serves. These
// are ordinary handler bodies; the dispatch engine treats them like any
// other registered method.
package methods

import (
	"context"

	"github.com/morezero/method-gateway/pkg/dispatch"
	"github.com/morezero/method-gateway/pkg/shape"
)

// NewRegistry builds the gateway's method registry.
func NewRegistry() *dispatch.Registry {
	return dispatch.NewRegistry(map[string]dispatch.Method{
		"echo":       echoMethod(),
		"geo/locate": locateMethod(),
	})
}

// echoMethod returns its "p" param with an exclamation mark appended.
func echoMethod() dispatch.Method {
	return dispatch.Method{
		Params: shape.Object(shape.String("p")),
		Action: func(_ context.Context, params map[string]any, _ *dispatch.Request) (any, error) {
			return params["p"].(string) + "!", nil
		},
	}
}
