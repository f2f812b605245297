package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/authgate/authgate/internal/token"
)

// Identity is the authenticated claim set attached to the request context
// for the downstream handler. It exists for the duration of one request.
type Identity struct {
	ID    string
	Email string
	Name  string
}

type identityKey struct{}

// IdentityFrom extracts the authenticated identity placed by RequireAuth.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// RequireAuth returns a middleware enforcing an `Authorization: Bearer <token>`
// header. Any verification failure collapses to a single 401 "Invalid token"
// so internal detail never leaks to the caller.
func RequireAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const prefix = "Bearer "
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, prefix) {
				unauthorized(w, "No token provided")
				return
			}
			claims, err := tokens.Verify(strings.TrimPrefix(header, prefix))
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}
			identity := Identity{ID: claims.Subject, Email: claims.Email, Name: claims.Name}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, identity)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
