package methods

import (
	"context"
	"net/netip"
	"strings"

	"github.com/morezero/method-gateway/pkg/dispatch"
	"github.com/morezero/method-gateway/pkg/shape"
)

// locateMethod classifies an IP address by scope. With no "ip" param it
// falls back to the caller's address. Registered under a slash-delimited
// composite name.
func locateMethod() dispatch.Method {
	return dispatch.Method{
		Params: shape.Object(shape.String("ip").Optional()),
		Action: func(_ context.Context, params map[string]any, req *dispatch.Request) (any, error) {
			raw, _ := params["ip"].(string)
			if raw == "" && req != nil {
				raw = hostOf(req.RemoteAddr)
			}

			addr, err := netip.ParseAddr(raw)
			if err != nil {
				return nil, dispatch.NewCallError("NOT_FOUND", "No locatable address: "+raw)
			}

			return map[string]any{
				"ip":    addr.String(),
				"scope": scopeOf(addr),
			}, nil
		},
	}
}

// hostOf strips a port from host:port forms; bare addresses pass through.
func hostOf(remoteAddr string) string {
	if ap, err := netip.ParseAddrPort(remoteAddr); err == nil {
		return ap.Addr().String()
	}
	return strings.Trim(remoteAddr, "[]")
}

func scopeOf(addr netip.Addr) string {
	switch {
	case addr.IsLoopback():
		return "loopback"
	case addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast():
		return "link-local"
	case addr.IsPrivate():
		return "private"
	default:
		return "global"
	}
}
