package payment_reconcile

import (
	"context"
	"time"

	"parcel-service/pkg/logger"
)

// PaymentReconcile periodically marks funded parcels paid.
type PaymentReconcile struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewPaymentReconcile(log logger.Logger, service Service, interval time.Duration) *PaymentReconcile {
	return &PaymentReconcile{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (p *PaymentReconcile) TTL() time.Duration {
	return p.interval
}

func (p *PaymentReconcile) Do(ctx context.Context) error {
	if p.interval > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.interval)
		defer cancel()
	}

	repaired, err := p.service.Reconcile(ctx)
	if repaired > 0 {
		p.log.Info("payment reconcile", logger.NewField("repaired_parcels", repaired))
	}
	return err
}

func (p *PaymentReconcile) Info() string {
	return "payment reconcile"
}
