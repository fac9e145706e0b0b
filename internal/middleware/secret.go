package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/2beens/fitstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// RequireSecret guards a route with a shared secret sent in the given header.
// An empty secret disables the check.
func RequireSecret(header, secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.secret")
			if secret == "" || r.Method == http.MethodOptions {
				span.End()
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(header)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				log.Tracef("[secret middleware] unauthorized => %s", r.URL.Path)
				span.SetStatus(codes.Error, "invalid-secret")
				span.End()
				http.Error(w, "no can do", http.StatusUnauthorized)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			span.End()
			next.ServeHTTP(w, r)
		})
	}
}
