package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/services"
	"github.com/helpdesk-tools/incident-tracker/userctx"
)

// RequireAuth ensures the user is authenticated. The session holds only the
// user id; the full user record is loaded per request so role changes take
// effect immediately. Unauthenticated requests are redirected to the login
// page with the intended destination stored in the session.
func RequireAuth(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.GetSession(r)

			userID, ok := sess.Get("user_id").(int)
			if !ok || userID == 0 {
				sess.Set("redirect_after_login", r.URL.Path)
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
				return
			}

			user, err := auth.GetUser(r.Context(), userID)
			if err != nil {
				// Stale session pointing at a deleted user
				sess.Delete("user_id")
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
				return
			}

			ctx := userctx.SetUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin ensures the authenticated user has the admin role. Responds
// with 403 Forbidden, no redirect. Must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userctx.GetUser(r.Context())
		if !models.Authorize(user, models.RuleAdminOnly, 0) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
