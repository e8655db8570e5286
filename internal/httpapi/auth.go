package httpapi

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/abianche/uoo-cooldown-manager/internal/config"
)

// APIKeyAuth guards the editing API with X-API-Key. With no keys configured
// the API is open, which is the normal setup for a local editor. Read-only
// keys are limited to GET and HEAD.
func APIKeyAuth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(cfg.APIKeys) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				http.Error(w, "api key required", http.StatusUnauthorized)
				return
			}
			var matched *config.APIKey
			for i := range cfg.APIKeys {
				if subtle.ConstantTimeCompare([]byte(cfg.APIKeys[i].Key), []byte(key)) == 1 {
					matched = &cfg.APIKeys[i]
					break
				}
			}
			if matched == nil {
				http.Error(w, "invalid api key", http.StatusForbidden)
				return
			}
			if matched.ReadOnly() && r.Method != http.MethodGet && r.Method != http.MethodHead {
				slog.Warn("read-only api key used for write", "key", matched.Name, "method", r.Method, "path", r.URL.Path)
				http.Error(w, "api key is read-only", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
