package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fleetbook/fleetbook/internal/config"
	"github.com/fleetbook/fleetbook/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the Bearer token into a principal and store it in the context
	// for downstream services. An absent or invalid token leaves the request
	// anonymous; route guards decide whether that is acceptable.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			if token := bearerToken(req); token != "" {
				claims, err := deps.TokenIssuer.Validate(token)
				if err != nil {
					log.Debugf("token rejected: %v", err)
					http.Error(w, "invalid or expired token", http.StatusUnauthorized)
					return
				}

				u, err := deps.UserService.GetUserByUid(ctx, claims.UserUID)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", claims.UserUID)
						http.Error(w, "user not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get user: %v", err)
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

func bearerToken(req *http.Request) string {
	header := req.Header.Get("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return token
	}
	return ""
}

// requireAuth rejects anonymous requests.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if _, err := user.CurrentUser(req.Context()); err != nil {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next(w, req)
	}
}

// requireAdmin rejects anonymous requests and non-admin principals.
func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if _, err := user.CurrentUser(req.Context()); err != nil {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin(req.Context()) {
			http.Error(w, "admin privileges required", http.StatusForbidden)
			return
		}
		next(w, req)
	}
}
