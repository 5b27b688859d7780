package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"parcel-service/internal/entities"
	"parcel-service/internal/pkg/config"
	"parcel-service/internal/pkg/metrics"
	retrierconfig "parcel-service/pkg/retrier"
	"parcel-service/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "stripe"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type PaymentGateway struct {
	intents  intentClient
	retrier  retrier
	currency string
}

func New(cfg *config.PaymentGateway) (*PaymentGateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("payment gateway config: %w", err)
	}

	api := client.New(cfg.SecretKey, nil)
	return NewWithClient(api.PaymentIntents, cfg.Currency), nil
}

func NewWithClient(intents intentClient, currency string) *PaymentGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &PaymentGateway{
		intents:  intents,
		retrier:  backoff_adapter.New(retryConfig),
		currency: strings.ToLower(currency),
	}
}

// CreateIntent asks the gateway for a card payment intent. All attempts share
// one idempotency key, so a retried call never creates a second intent.
func (g *PaymentGateway) CreateIntent(ctx context.Context, amount int64) (*entities.PaymentIntent, error) {
	idempotencyKey := uuid.NewString()

	var intent *stripe.PaymentIntent
	err := g.executeWithMetrics(ctx, "PaymentIntents.New", func(ctx context.Context) error {
		params := &stripe.PaymentIntentParams{
			Amount:             stripe.Int64(amount),
			Currency:           stripe.String(g.currency),
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		}
		params.Context = ctx
		params.SetIdempotencyKey(idempotencyKey)

		var err error
		intent, err = g.intents.New(params)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("gateway stripe, create payment intent: %w", err)
	}

	return &entities.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}

func isRetryable(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		// transport level failure, the idempotency key makes a retry safe
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}

	return stripeErr.HTTPStatusCode == http.StatusTooManyRequests ||
		stripeErr.HTTPStatusCode >= http.StatusInternalServerError
}

func (g *PaymentGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	code := statusCode(err)
	metrics.GatewayRequestDuration.WithLabelValues(serviceName, method, code).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		metrics.GatewayRetriesTotal.WithLabelValues(serviceName, method, code).Inc()
	}

	return err
}

func statusCode(err error) string {
	if err == nil {
		return "200"
	}
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode != 0 {
		return strconv.Itoa(stripeErr.HTTPStatusCode)
	}
	return "UNKNOWN"
}
