package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authkit "github.com/lingostack/authkit"
)

// AccessTokenCookie is the cookie consulted when no Authorization header is
// present. The header always takes precedence.
const AccessTokenCookie = "accessToken"

type authResultContextKey struct{}

// AuthResultFromContext returns the verified claim attached by [Guard].
func AuthResultFromContext(ctx context.Context) (*authkit.AuthResult, bool) {
	res, ok := ctx.Value(authResultContextKey{}).(*authkit.AuthResult)
	return res, ok
}

// Guard returns middleware that authenticates the request through
// [authkit.Engine.Authorize] and enforces the route's role allow-list.
// An empty allow-list admits any authenticated role. On success the verified
// claim is attached to the request context for downstream handlers.
func Guard(engine *authkit.Engine, allowedRoles ...authkit.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized: no token provided")
				return
			}

			token, ok := requestToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Unauthorized: no token provided")
				return
			}

			res, err := engine.Authorize(r.Context(), token, allowedRoles...)
			if err != nil {
				status, message := gateFailure(err)
				writeError(w, status, message)
				return
			}

			ctx := context.WithValue(r.Context(), authResultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestToken extracts the bearer token from the Authorization header,
// falling back to the accessToken cookie.
func requestToken(r *http.Request) (string, bool) {
	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		return token, true
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

func gateFailure(err error) (int, string) {
	switch {
	case errors.Is(err, authkit.ErrPermissionDenied):
		return http.StatusForbidden, "Forbidden: you do not have access to this resource"
	case errors.Is(err, authkit.ErrUserNotFound):
		return http.StatusBadRequest, "User does not exist"
	default:
		return http.StatusUnauthorized, "Unauthorized: invalid token"
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
