package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/roguebingo/internal/api/apierr"
	"github.com/mcoot/roguebingo/internal/middleware"
)

// Recovery turns handler panics into a JSON 500. The message carries the
// request ID so a failed run action can be matched to the server log.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, runPanicHandler)
}

func runPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	id := middleware.RequestIDFrom(r.Context())
	if id == "" {
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}
	apierr.WriteError(w, apierr.NewInternalErrorf("Internal server error (request %s)", id))
}
