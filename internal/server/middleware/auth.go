// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// callerIDKey is the context key for storing the authenticated caller ID.
const callerIDKey ContextKey = "callerID"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (CallerIDGetter, error)
}

// CallerIDGetter exposes the caller identity carried by token claims.
type CallerIDGetter interface {
	GetCallerID() int
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the
// caller ID to the request context. Requests whose path is listed in exempt
// pass through unauthenticated.
func AuthMiddleware(validator TokenValidator, exempt ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), callerIDKey, claims.GetCallerID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from a case-insensitive "Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="burnout"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}` + "\n"))
}

// GetCallerID extracts the authenticated caller ID from the request context.
func GetCallerID(r *http.Request) (int, error) {
	id, ok := r.Context().Value(callerIDKey).(int)
	if !ok {
		return 0, fmt.Errorf("caller ID not found in request context")
	}
	return id, nil
}
