// internal/api/middleware/auth.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier resolves a bearer token to the caller's uid. The core never
// sees credentials, only the verified identity behind this interface.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (uid string, err error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	Client *auth.Client
}

// Verify checks the ID token signature and expiry and returns the Firebase UID.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.Client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return decoded.UID, nil
}

// JWTVerifier verifies locally issued HS256 tokens. Intended for development
// and testing where no Firebase project is available.
type JWTVerifier struct {
	Secret []byte
}

// Verify parses the token with the shared secret and returns its subject claim.
func (v *JWTVerifier) Verify(ctx context.Context, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.Secret, nil
	})
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject claim")
	}
	return sub, nil
}

// context key
type contextKey string

const uidKey contextKey = "uid"

// Auth returns middleware that requires a valid bearer token and attaches the
// verified uid to the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
				return
			}

			uid, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), uidKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UID extracts the verified uid from the request context. Empty when the
// request did not pass through the auth middleware.
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(uidKey).(string)
	return uid
}

// WithUID returns a context carrying the given uid. Used by tests to simulate
// an authenticated request.
func WithUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, uidKey, uid)
}
