//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_reconcile_test
package payment_reconcile

import "context"

type Service interface {
	Reconcile(ctx context.Context) (int, error)
}
