package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "parcel-service/internal/app"
	"parcel-service/internal/gateway/firebase"
	"parcel-service/internal/gateway/kafka/parcel_events"
	"parcel-service/internal/handlers/rest/healthcheck_head"
	"parcel-service/internal/handlers/rest/parcel_assign_rider_patch"
	"parcel-service/internal/handlers/rest/parcel_cashout_patch"
	"parcel-service/internal/handlers/rest/parcel_delete"
	"parcel-service/internal/handlers/rest/parcel_events_get"
	"parcel-service/internal/handlers/rest/parcel_get"
	"parcel-service/internal/handlers/rest/parcel_post"
	"parcel-service/internal/handlers/rest/parcel_status_patch"
	"parcel-service/internal/handlers/rest/parcels_assignable_get"
	"parcel-service/internal/handlers/rest/parcels_get"
	"parcel-service/internal/handlers/rest/payment_intent_post"
	"parcel-service/internal/handlers/rest/payment_post"
	"parcel-service/internal/handlers/rest/payments_get"
	"parcel-service/internal/handlers/rest/ping_get"
	"parcel-service/internal/handlers/rest/rider_delete"
	"parcel-service/internal/handlers/rest/rider_post"
	"parcel-service/internal/handlers/rest/rider_status_patch"
	"parcel-service/internal/handlers/rest/rider_tasks_get"
	"parcel-service/internal/handlers/rest/riders_get"
	"parcel-service/internal/handlers/rest/user_admin_patch"
	"parcel-service/internal/handlers/rest/user_post"
	"parcel-service/internal/handlers/rest/user_role_get"
	"parcel-service/internal/handlers/rest/users_search_get"
	"parcel-service/internal/pkg/config"
	"parcel-service/internal/pkg/dotenv"
	"parcel-service/internal/pkg/kafka"
	metrics_system "parcel-service/internal/pkg/metrics"
	"parcel-service/internal/pkg/middlewares/access"
	"parcel-service/internal/pkg/middlewares/graceful_shutdown"
	"parcel-service/internal/pkg/middlewares/metrics"
	"parcel-service/internal/pkg/middlewares/rate_limiter"
	"parcel-service/internal/pkg/middlewares/timeout"
	"parcel-service/internal/pkg/postgres"
	parcelService "parcel-service/internal/service/parcel"
	"parcel-service/pkg/logger"
	"parcel-service/pkg/logger/zap_adapter"
	"parcel-service/pkg/token_bucket"
)

func main() {
	_, envErr := os.Stat(".env")
	if err := dotenv.Load(); err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting parcel-service application")
	if errors.Is(envErr, fs.ErrNotExist) {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // shutdown contexts are derived from context.Background() on purpose
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	identityGateway, err := firebase.New(ctx, &cfg.Firebase)
	if err != nil {
		return fmt.Errorf("identity gateway: %w", err)
	}

	var publisher parcelService.EventPublisher = parcel_events.Nop{}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				runLog.Error("failed to close kafka producer",
					logger.NewField("error", err),
				)
			}
		}()
		publisher = parcel_events.New(producer, cfg.Kafka.Topics.ParcelStatusChanged)
	} else {
		runLog.Warn("KAFKA_BROKERS is empty, parcel status events are not published")
	}

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, cfg, publisher)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx, metrics_system.DefaultSystemInterval)

	// ongoingCtx is the BaseContext of every connection. It outlives SIGTERM and
	// is cancelled only after server.Shutdown() so in-flight requests can finish.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(log, &isShuttingDown, pool, identityGateway, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, pool),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil channel when pprof is disabled, never selected
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// ctx is already cancelled here.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	pool *pgxpool.Pool,
	verifier access.IdentityVerifier,
	app *application.Application,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown))
	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterBurst, token_bucket.NewKeyed(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS))))

	routes := access.NewRouter(router, log, verifier, app.Gate)

	routes.Handle("/metrics", access.Public(), promhttp.Handler()).Methods(http.MethodGet)
	routes.Handle("/healthcheck", access.Public(), healthcheck_head.New(isShuttingDown, pool)).Methods(http.MethodHead)
	routes.Handle("/ping", access.Public(), ping_get.New(log)).Methods(http.MethodGet)

	// users
	routes.Handle("/users", access.Public(), user_post.New(log, app.ServiceUser)).Methods(http.MethodPost)
	routes.Handle("/users/search", access.Admin(), users_search_get.New(log, app.ServiceUser)).Methods(http.MethodGet)
	routes.Handle("/users/role/{email}", access.Public(), user_role_get.New(log, app.ServiceUser)).Methods(http.MethodGet)
	routes.Handle("/users/admin/{id}", access.Admin(), user_admin_patch.New(log, app.ServiceUser, user_admin_patch.Grant)).Methods(http.MethodPatch)
	routes.Handle("/users/remove-admin/{id}", access.Admin(), user_admin_patch.New(log, app.ServiceUser, user_admin_patch.Revoke)).Methods(http.MethodPatch)

	// parcels; static paths before /parcels/{id}
	routes.Handle("/parcels", access.SelfQueryOrAdmin("email"), parcels_get.New(log, app.ServiceParcel)).Methods(http.MethodGet)
	routes.Handle("/parcels/assignable", access.Admin(), parcels_assignable_get.New(log, app.ServiceParcel)).Methods(http.MethodGet)
	routes.Handle("/parcels", access.Authenticated(), parcel_post.New(log, app.ServiceParcel)).Methods(http.MethodPost)
	routes.Handle("/parcels/{id}", access.Authenticated(), parcel_get.New(log, app.ServiceParcel)).Methods(http.MethodGet)
	routes.Handle("/parcels/{id}/events", access.Authenticated(), parcel_events_get.New(log, app.ServiceParcel)).Methods(http.MethodGet)
	routes.Handle("/parcels/{id}/update-status", access.Rider(), parcel_status_patch.New(log, app.ServiceParcel)).Methods(http.MethodPatch)
	routes.Handle("/parcels/{id}/cashout", access.Authenticated(), parcel_cashout_patch.New(log, app.ServiceParcel)).Methods(http.MethodPatch)
	routes.Handle("/parcels/{id}/assign-rider", access.Admin(), parcel_assign_rider_patch.New(log, app.ServiceParcel)).Methods(http.MethodPatch)
	routes.Handle("/parcels/{id}", access.Authenticated(), parcel_delete.New(log, app.ServiceParcel)).Methods(http.MethodDelete)

	// payments
	routes.Handle("/payments", access.SelfQuery("email"), payments_get.New(log, app.ServicePayment)).Methods(http.MethodGet)
	routes.Handle("/payments", access.Authenticated(), payment_post.New(log, app.ServiceParcel)).Methods(http.MethodPost)
	routes.Handle("/create-payment-intent", access.Authenticated(), payment_intent_post.New(log, app.ServicePayment)).Methods(http.MethodPost)

	// riders
	routes.Handle("/riders", access.Authenticated(), rider_post.New(log, app.ServiceRider)).Methods(http.MethodPost)
	routes.Handle("/riders/pending", access.Admin(), riders_get.New(log, app.ServiceRider, riders_get.Pending)).Methods(http.MethodGet)
	routes.Handle("/riders/active", access.Admin(), riders_get.New(log, app.ServiceRider, riders_get.Active)).Methods(http.MethodGet)
	routes.Handle("/riders/by-district/{district}", access.Admin(), riders_get.New(log, app.ServiceRider, riders_get.ByDistrict)).Methods(http.MethodGet)
	routes.Handle("/riders/{id}/approve", access.Admin(), rider_status_patch.New(log, app.ServiceRider, rider_status_patch.Approve)).Methods(http.MethodPatch)
	routes.Handle("/riders/{id}/deactivate", access.Admin(), rider_status_patch.New(log, app.ServiceRider, rider_status_patch.Deactivate)).Methods(http.MethodPatch)
	routes.Handle("/riders/{id}", access.Admin(), rider_delete.New(log, app.ServiceRider)).Methods(http.MethodDelete)
	routes.Handle("/riders/{email}/pending-tasks", access.RiderSelf("email"), rider_tasks_get.New(log, app.ServiceRider, rider_tasks_get.Pending)).Methods(http.MethodGet)
	routes.Handle("/riders/{email}/completed-tasks", access.RiderSelf("email"), rider_tasks_get.New(log, app.ServiceRider, rider_tasks_get.Completed)).Methods(http.MethodGet)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, pool *pgxpool.Pool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
