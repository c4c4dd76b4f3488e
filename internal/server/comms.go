package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	comms "github.com/nats-io/nats.go"

	"github.com/morezero/method-gateway/pkg/commsutil"
	"github.com/morezero/method-gateway/pkg/dispatch"
	"github.com/morezero/method-gateway/pkg/router"
)

const commsLogPrefix = "server:comms"

// commsCall is the COMMS message envelope: one method call per message.
// A call with method "batch" and an array params payload runs in batch mode,
// exactly like the HTTP batch route.
type commsCall struct {
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// SubscribeMethods serves the router over a COMMS subject via request/reply.
// Each message carries one commsCall; the reply is the same wire envelope the
// HTTP entry point produces.
func SubscribeMethods(ctx context.Context, nc *comms.Conn, subject string, ro *router.Router, timeout time.Duration) (*comms.Subscription, error) {
	return nc.Subscribe(subject, func(msg *comms.Msg) {
		var call commsCall
		if err := commsutil.DecodePayload(msg.Data, &call); err != nil {
			slog.Error(fmt.Sprintf("%s - failed to decode request: %v", commsLogPrefix, err))
			call = commsCall{}
		}

		req := &dispatch.Request{
			Verb:       "COMMS",
			Path:       call.Method,
			Body:       call.Params,
			RemoteAddr: msg.Subject,
		}

		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		res := ro.Route(reqCtx, req)
		if msg.Reply == "" {
			return
		}
		if err := msg.Respond(res.Body); err != nil {
			slog.Error(fmt.Sprintf("%s - failed to respond: %v", commsLogPrefix, err))
		}
	})
}
