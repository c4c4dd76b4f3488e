package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/morezero/method-gateway/pkg/dispatch"
	"github.com/morezero/method-gateway/pkg/router"
)

// MethodHandler adapts the router to net/http. The path under basePath is
// the method name (or the batch route); the body is decoded as JSON and
// handed to the router as-is, so body-shape gating stays in one place.
func MethodHandler(ro *router.Router, basePath string, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		// A body that is not valid JSON decodes to nil and is rejected by the
		// router's shape gate; no method ever sees it.
		var body any
		if len(raw) > 0 {
			json.Unmarshal(raw, &body)
		}

		req := &dispatch.Request{
			Verb:       r.Method,
			Path:       strings.TrimPrefix(r.URL.Path, basePath),
			Body:       body,
			RemoteAddr: r.RemoteAddr,
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		res := ro.Route(ctx, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusFor(res))
		w.Write(res.Body)
	})
}

// statusFor maps the router's status intent to an HTTP status code. The wire
// envelope itself never varies with the code.
func statusFor(res *router.Result) int {
	if res.StatusIntent == router.IntentSuccess {
		return http.StatusOK
	}
	if res.ErrorKind == dispatch.KindBadRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// handleHealth reports the registered method surface. The gateway holds no
// connections of its own to probe beyond process liveness.
func handleHealth(reg *dispatch.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "healthy",
			"methods": reg.Names(),
		})
	}
}
