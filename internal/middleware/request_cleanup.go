package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Command and exercise payloads are small, anything past this is not worth
// reading just to keep the connection alive.
const maxDrainBytes = 64 << 10

// DrainAndCloseRequest reads whatever the handler left unread of the request
// body, up to maxDrainBytes, and closes it.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}

			drained, err := io.Copy(io.Discard, io.LimitReader(r.Body, maxDrainBytes+1))
			if err != nil {
				log.Tracef("drain request body %s %s: %s", r.Method, r.URL.Path, err)
			} else if drained > maxDrainBytes {
				log.Tracef("request body %s %s larger than %d bytes, closing undrained", r.Method, r.URL.Path, maxDrainBytes)
			}
			_ = r.Body.Close()
		})
	}
}
