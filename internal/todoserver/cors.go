package todoserver

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	apiclient "github.com/Equilibriumty/typesafe-api-client"
)

// CORSConfig controls cross-origin access to the server.
type CORSConfig struct {
	// AllowOrigins lists the origins allowed to call the API. "*" allows all.
	AllowOrigins []string
	// AllowHeaders defaults to Content-Type, Accept and Authorization.
	AllowHeaders []string
	// MaxAge is the preflight cache lifetime in seconds; 0 omits the header.
	MaxAge int
}

// WithCORS answers preflight requests and sets Access-Control-* headers for
// the configured origins.
func WithCORS(cfg CORSConfig) Option {
	return func(s *Server) {
		s.cors = &cfg
	}
}

func cors(cfg CORSConfig, next http.Handler) http.Handler {
	methods := make([]string, 0, len(apiclient.Methods)+1)
	for _, m := range apiclient.Methods {
		methods = append(methods, string(m))
	}
	methods = append(methods, http.MethodOptions)
	allowMethods := strings.Join(methods, ", ")

	headers := cfg.AllowHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", "Accept", "Authorization"}
	}
	allowHeaders := strings.Join(headers, ", ")
	wildcard := len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case origin == "":
		case wildcard:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case slices.Contains(cfg.AllowOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
			if cfg.MaxAge > 0 {
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
