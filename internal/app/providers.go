package app

import (
	"context"
	"time"

	"parcel-service/internal/gateway/stripe"
	"parcel-service/internal/handlers/tasks/payment_reconcile"
	"parcel-service/internal/pkg/config"
	parcelRepo "parcel-service/internal/repository/parcel"
	paymentRepo "parcel-service/internal/repository/payment"
	riderRepo "parcel-service/internal/repository/rider"
	userRepo "parcel-service/internal/repository/user"
	authzService "parcel-service/internal/service/authz"
	parcelService "parcel-service/internal/service/parcel"
	paymentService "parcel-service/internal/service/payment"
	riderService "parcel-service/internal/service/rider"
	userService "parcel-service/internal/service/user"
	"parcel-service/pkg/background"
	"parcel-service/pkg/logger"
	"parcel-service/pkg/querier"
	"parcel-service/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideUserRepository(querier *querier.Querier) *userRepo.Repository {
	return userRepo.New(querier)
}

func provideRiderRepository(querier *querier.Querier) *riderRepo.Repository {
	return riderRepo.New(querier)
}

func providePaymentRepository(querier *querier.Querier) *paymentRepo.Repository {
	return paymentRepo.New(querier)
}

func provideParcelRepository(querier *querier.Querier) *parcelRepo.Repository {
	return parcelRepo.New(querier)
}

func providePaymentGateway(cfg *config.Config) (*stripe.PaymentGateway, error) {
	return stripe.New(&cfg.PaymentGateway)
}

func provideParcelOptions(cfg *config.Config) parcelService.Options {
	return parcelService.Options{
		StrictTransitions:       cfg.Lifecycle.StrictTransitions,
		CashoutRequiresDelivery: cfg.Lifecycle.CashoutRequiresDelivery,
	}
}

func provideRiderOptions(cfg *config.Config) riderService.Options {
	return riderService.Options{
		StrictTransitions: cfg.Lifecycle.StrictTransitions,
	}
}

func provideReconcileInterval(cfg *config.Config) ReconcileInterval {
	return ReconcileInterval(cfg.Tasks.PaymentReconcileInterval)
}

func provideServiceUser(repository *userRepo.Repository) *userService.User {
	return userService.New(repository)
}

func provideGate(users *userRepo.Repository) *authzService.Gate {
	return authzService.New(users)
}

func provideServiceParcel(
	repository *parcelRepo.Repository,
	riders *riderRepo.Repository,
	payments *paymentRepo.Repository,
	users *userRepo.Repository,
	publisher parcelService.EventPublisher,
	txManager *tx.Manager,
	log logger.Logger,
	opts parcelService.Options,
) *parcelService.Parcel {
	return parcelService.New(
		repository,
		riders,
		payments,
		users,
		publisher,
		txManager,
		log.With(logger.NewField("service", "parcel")),
		opts,
	)
}

func provideServiceRider(
	repository *riderRepo.Repository,
	users *userRepo.Repository,
	parcels *parcelRepo.Repository,
	txManager *tx.Manager,
	opts riderService.Options,
) *riderService.Rider {
	return riderService.New(repository, users, parcels, txManager, opts)
}

func provideServicePayment(
	repository *paymentRepo.Repository,
	parcels *parcelRepo.Repository,
	gateway *stripe.PaymentGateway,
	txManager *tx.Manager,
) *paymentService.Payment {
	return paymentService.New(repository, parcels, gateway, txManager)
}

func providePaymentReconcileTask(
	log logger.Logger,
	service payment_reconcile.Service,
	interval ReconcileInterval,
) *payment_reconcile.PaymentReconcile {
	return payment_reconcile.NewPaymentReconcile(log, service, time.Duration(interval))
}

func provideTaskList(
	paymentReconcileTask *payment_reconcile.PaymentReconcile,
) []background.Task {
	return []background.Task{
		paymentReconcileTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
