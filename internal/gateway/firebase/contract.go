//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=firebase_test
package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}
