package middleware

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/mcoot/roguebingo/internal/api/apierr"
	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/middleware"
)

// Logging tags requests with an ID and logs them once handled
func Logging(logger *slog.Logger, rnd random.Random) func(http.Handler) http.Handler {
	requestID := middleware.RequestID(rnd)
	logging := middleware.Logging(logger)
	return func(next http.Handler) http.Handler {
		return requestID(logging(next))
	}
}

// JSONOnly rejects request bodies declared as anything other than JSON.
// Bodies without a Content-Type are accepted.
func JSONOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "" && r.ContentLength != 0 {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				apierr.WriteError(w, apierr.NewUnsupportedMediaTypeError())
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
