package middleware

import (
	"net/http"
	"strings"
)

// CORSConfig holds configuration for the CORS middleware
type CORSConfig struct {
	// AllowedOrigins is "*" or a comma-separated list of origins.
	AllowedOrigins string
}

// DefaultCORSConfig allows every origin, which suits an API whose
// playlists are meant to be loaded by arbitrary players.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{AllowedOrigins: "*"}
}

// CORS returns a middleware that answers cross-origin requests,
// including the OPTIONS preflight browsers send when a caller adds
// custom headers. It must sit in front of the router, which has no
// OPTIONS routes of its own.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	allowAll := config.AllowedOrigins == "" || config.AllowedOrigins == "*"

	allowed := make(map[string]bool)
	if !allowAll {
		for _, origin := range strings.Split(config.AllowedOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowed[origin] = true
			}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
