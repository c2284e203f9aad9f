package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kelydev/apiClinica/session"
	"github.com/kelydev/apiClinica/views"
	"github.com/samber/lo"
)

// Define a key type for context values to avoid collisions
type contextKey string

const (
	// UserKey is the key used to store the session user in the request context
	UserKey contextKey = "sessionUser"

	// LoginPage is where anonymous requests to protected routes are sent.
	LoginPage = "/login.html"
)

// Auth guards routes using the session manager.
type Auth struct {
	sessions *session.Manager
}

// NewAuth creates the access control guard.
func NewAuth(sessions *session.Manager) *Auth {
	return &Auth{sessions: sessions}
}

// RequireLogin redirects anonymous requests to the login page and stores the
// session user in the request context for the rest of the chain.
func (a *Auth) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.sessions.Lookup(r)
		if !ok {
			http.Redirect(w, r, LoginPage, http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole lets the request through only when the session role is one of
// roles. It must run after RequireLogin.
func (a *Auth) RequireRole(roles ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, LoginPage, http.StatusFound)
				return
			}
			if !lo.Contains(roles, user.Role) {
				views.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the session user placed by RequireLogin.
func UserFromContext(ctx context.Context) (session.User, bool) {
	user, ok := ctx.Value(UserKey).(session.User)
	return user, ok
}

// UserHandlerFunc is a handler that receives the session user explicitly.
type UserHandlerFunc func(w http.ResponseWriter, r *http.Request, user session.User)

// WithUser adapts h to http.Handler. Requests without a session user are sent
// to the login page.
func WithUser(h UserHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, LoginPage, http.StatusFound)
			return
		}
		h(w, r, user)
	}
}
