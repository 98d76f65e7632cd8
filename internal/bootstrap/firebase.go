// internal/bootstrap/firebase.go
package bootstrap

import (
	"context"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

var (
	firebaseOnce   sync.Once
	firebaseClient *auth.Client
	firebaseErr    error
)

// InitFirebase initializes the Firebase app and returns its auth client.
// Initialization happens exactly once per process; subsequent calls return the
// same client. Credentials come from GOOGLE_APPLICATION_CREDENTIALS.
func InitFirebase(ctx context.Context) (*auth.Client, error) {
	firebaseOnce.Do(func() {
		app, err := firebase.NewApp(ctx, nil)
		if err != nil {
			firebaseErr = err
			return
		}
		firebaseClient, firebaseErr = app.Auth(ctx)
	})
	return firebaseClient, firebaseErr
}
