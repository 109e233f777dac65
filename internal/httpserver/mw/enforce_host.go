package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/comments/internal/logger"
	"github.com/MrSnakeDoc/comments/internal/utils"
)

// EnforceHost rejects requests whose Host header matches none of
// allowedHosts. Patterns are exact names or "*.example.com" wildcards and are
// compared case-insensitively, ignoring any port. An empty list disables the
// check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		log.Debug("EnforceHost: no hosts configured, passthrough")
		return func(next http.Handler) http.Handler { return next }
	}

	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		patterns = append(patterns, strings.ToLower(h))
	}
	log.Debug("EnforceHost: initialized", logger.Strings("hosts", patterns))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(utils.ParseHostNoPort(r.Host))
			for _, pattern := range patterns {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Info("request rejected by host filter", logger.String("host", r.Host))
			forbid(w)
		})
	}
}

// matchHost reports whether host equals pattern or, for "*.example.com",
// is a subdomain of example.com.
func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return strings.HasSuffix(host, suffix)
	}
	return false
}
