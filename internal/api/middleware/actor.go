package middleware

import (
	"net/http"

	"github.com/clinicbook/admin-console/internal/application/services"
)

// ActorMiddleware records which admin performed a request, for the audit
// trail. The console frontend sends the signed-in admin's email in the
// X-Admin-Actor header.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := r.Header.Get("X-Admin-Actor"); actor != "" {
			r = r.WithContext(services.WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}
