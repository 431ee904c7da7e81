package middleware

import (
	"net"
	"net/http"

	"go.uber.org/zap"
)

// WithTrustedSubnet lets a request through only when its X-Real-IP header
// holds an address inside cidr. An empty or unparsable cidr forbids every
// request.
func WithTrustedSubnet(cidr string, log *zap.Logger) func(next http.Handler) http.Handler {
	var subnet *net.IPNet
	if cidr != "" {
		var err error
		if _, subnet, err = net.ParseCIDR(cidr); err != nil {
			log.Error("invalid trusted subnet, internal endpoints are closed", zap.String("cidr", cidr), zap.Error(err))
			subnet = nil
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := net.ParseIP(r.Header.Get("X-Real-IP"))

			if subnet == nil || ip == nil || !subnet.Contains(ip) {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
