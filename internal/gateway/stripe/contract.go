//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stripe_test
package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v76"
)

type intentClient interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
