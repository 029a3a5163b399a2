package http

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5/middleware"
)

// withRealIP applies chi's RealIP only when the connecting peer is one of
// the trusted proxies. Other peers keep their own address.
func (h *Handler) withRealIP(next http.Handler) http.Handler {
	forwarded := middleware.RealIP(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.isTrustedProxy(r.RemoteAddr) {
			forwarded.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) isTrustedProxy(remoteAddr string) bool {
	if len(h.trustedProxies) == 0 {
		return false
	}

	addrPort, err := netip.ParseAddrPort(remoteAddr)
	if err != nil {
		return false
	}
	addr := addrPort.Addr().Unmap()

	for _, prefix := range h.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
