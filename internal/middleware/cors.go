package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Cors lets through requests without an Origin (the mobile app, curl, MCP
// clients) and browser requests from the allowed origins. Other browser
// origins get 403.
func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization",
			"X-MCP-Secret", "MCP-Protocol-Version", "Mcp-Session-Id",
		},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         600,
	})

	return func(next http.Handler) http.Handler {
		corsHandler := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case origin == "",
				strings.HasPrefix(r.Header.Get("User-Agent"), "FitStats/"),
				c.OriginAllowed(r):
				corsHandler.ServeHTTP(w, r)
			default:
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
			}
		})
	}
}
