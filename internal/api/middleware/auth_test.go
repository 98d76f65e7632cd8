// internal/api/middleware/auth_test.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	uid string
	err error
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (string, error) {
	return s.uid, s.err
}

func TestAuthMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(UID(r.Context())))
	})

	t.Run("MissingHeader", func(t *testing.T) {
		handler := Auth(&stubVerifier{uid: "u1"})(okHandler)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/wallet", nil)

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		handler := Auth(&stubVerifier{uid: "u1"})(okHandler)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/wallet", nil)
		req.Header.Set("Authorization", "token-without-scheme")

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		handler := Auth(&stubVerifier{err: errors.New("expired")})(okHandler)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/wallet", nil)
		req.Header.Set("Authorization", "Bearer bad-token")

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidTokenAttachesUID", func(t *testing.T) {
		handler := Auth(&stubVerifier{uid: "firebase-uid-1"})(okHandler)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/wallet", nil)
		req.Header.Set("Authorization", "Bearer good-token")

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "firebase-uid-1", rec.Body.String())
	})
}

func TestJWTVerifier(t *testing.T) {
	secret := []byte("test-secret")

	sign := func(t *testing.T, claims jwt.MapClaims, key []byte) string {
		t.Helper()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString(key)
		require.NoError(t, err)
		return signed
	}

	t.Run("ValidToken", func(t *testing.T) {
		verifier := &JWTVerifier{Secret: secret}
		token := sign(t, jwt.MapClaims{
			"sub": "user-42",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, secret)

		uid, err := verifier.Verify(context.Background(), token)

		assert.NoError(t, err)
		assert.Equal(t, "user-42", uid)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		verifier := &JWTVerifier{Secret: secret}
		token := sign(t, jwt.MapClaims{"sub": "user-42"}, []byte("other-secret"))

		_, err := verifier.Verify(context.Background(), token)

		assert.Error(t, err)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		verifier := &JWTVerifier{Secret: secret}
		token := sign(t, jwt.MapClaims{
			"sub": "user-42",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, secret)

		_, err := verifier.Verify(context.Background(), token)

		assert.Error(t, err)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		verifier := &JWTVerifier{Secret: secret}
		token := sign(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}, secret)

		_, err := verifier.Verify(context.Background(), token)

		assert.Error(t, err)
	})
}

func TestUIDWithoutAuth(t *testing.T) {
	assert.Empty(t, UID(context.Background()))
}
