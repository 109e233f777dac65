package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/comments/internal/logger"
	"github.com/MrSnakeDoc/comments/internal/utils"
)

// AllowOnlyCIDRS restricts a route to clients whose address matches one of
// allowed (IPs or CIDRs). An empty list disables the check.
// trustProxy should be true only when the server is reachable solely through
// a reverse proxy that sets the forwarding headers.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Debug("AllowOnlyCIDRS: no rules, passthrough")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("AllowOnlyCIDRS: initialized",
		logger.Int("rules", m.Len()),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Info("request rejected by CIDR filter",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				forbid(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
