package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate/internal/token"
)

func guardedEcho(t *testing.T, tokens *token.Service) http.Handler {
	t.Helper()
	return RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(id.Email))
	}))
}

func TestRequireAuth_NoHeader(t *testing.T) {
	t.Parallel()

	tokens := token.NewService(token.Config{Secret: []byte("k"), TTL: time.Hour})
	rec := httptest.NewRecorder()
	guardedEcho(t, tokens).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, rec.Body.String())
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	t.Parallel()

	tokens := token.NewService(token.Config{Secret: []byte("k"), TTL: time.Hour})
	req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	guardedEcho(t, tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, rec.Body.String())
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	tokens := token.NewService(token.Config{Secret: []byte("k"), TTL: time.Hour})
	req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	guardedEcho(t, tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	expired := token.NewService(token.Config{Secret: []byte("k"), TTL: -time.Second})
	tok, err := expired.Issue("u1", "ann@x.com", "Ann")
	require.NoError(t, err)

	tokens := token.NewService(token.Config{Secret: []byte("k"), TTL: time.Hour})
	req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	guardedEcho(t, tokens).ServeHTTP(rec, req)

	// expiry detail collapses to the same caller-visible rejection
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := token.NewService(token.Config{Secret: []byte("k"), TTL: time.Hour})
	tok, err := tokens.Issue("u1", "ann@x.com", "Ann")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	guardedEcho(t, tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann@x.com", rec.Body.String())
}
