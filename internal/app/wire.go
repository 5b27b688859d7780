//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"parcel-service/internal/handlers/kafka-consumer/payment_succeeded"
	"parcel-service/internal/handlers/tasks/payment_reconcile"
	"parcel-service/internal/pkg/config"
	parcelService "parcel-service/internal/service/parcel"
	paymentService "parcel-service/internal/service/payment"
	riderService "parcel-service/internal/service/rider"
	userService "parcel-service/internal/service/user"
	"parcel-service/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitializeApplication for the HTTP service (cmd/service).
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
	publisher parcelService.EventPublisher,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideReconcileInterval,
		provideParcelOptions,
		provideRiderOptions,

		provideUserRepository,
		provideRiderRepository,
		providePaymentRepository,
		provideParcelRepository,

		providePaymentGateway,

		provideServiceUser,
		provideServiceParcel,
		provideServiceRider,
		provideServicePayment,
		provideGate,

		providePaymentReconcileTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceUser), new(*userService.User)),
		wire.Bind(new(ServiceParcel), new(*parcelService.Parcel)),
		wire.Bind(new(ServiceRider), new(*riderService.Rider)),
		wire.Bind(new(ServicePayment), new(*paymentService.Payment)),

		wire.Bind(new(payment_reconcile.Service), new(*paymentService.Payment)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp for the payment consumer (cmd/worker-payment-succeeded).
func InitializeKafkaWorkerApp(
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
	publisher parcelService.EventPublisher,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideParcelOptions,

		provideUserRepository,
		provideRiderRepository,
		providePaymentRepository,
		provideParcelRepository,

		provideServiceParcel,

		wire.Bind(new(payment_succeeded.Service), new(*parcelService.Parcel)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
