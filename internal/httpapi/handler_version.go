package httpapi

import (
	"net/http"
)

// Version is reported by /version and the CLI.
const Version = "1.0.0"

func VersionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"uoo-cooldown-manager","version":"` + Version + `"}`))
	}
}
