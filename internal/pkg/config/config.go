package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	Tasks struct {
		PaymentReconcileInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // per client refill rate
		RateLimiterBurst int           // per client bucket capacity
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Lifecycle struct {
		StrictTransitions       bool
		CashoutRequiresDelivery bool
	}

	Firebase struct {
		CredentialsFile string
		// ServiceKey is a base64 encoded service account JSON.
		ServiceKey string
		ProjectID  string
	}

	PaymentGateway struct {
		SecretKey string
		Currency  string
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		ConsumerGroup   string
		Topics          KafkaTopics
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	KafkaTopics struct {
		PaymentSucceeded    string
		ParcelStatusChanged string
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		PaymentSucceeded PaymentSucceeded
	}

	PaymentSucceeded struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		LogLevel       string
		Tasks          Tasks
		Server         HTTPServer
		Database       Database
		Lifecycle      Lifecycle
		Firebase       Firebase
		PaymentGateway PaymentGateway
		Kafka          Kafka
	}
)

const (
	defaultLogLevel = "info"
	defaultCurrency = "usd"
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadDatabase reads only the POSTGRES_* variables, for tools that need nothing else.
func LoadDatabase() (*Database, error) {
	db := databaseFromEnv()
	if err := db.Validate(); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return &db, nil
}

func databaseFromEnv() Database {
	return Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
}

func loadFromEnv() (*Config, error) {
	reconcileInterval, err := osGetEnvDuration("BACKGROUND_PAYMENT_RECONCILE_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT", false)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	paymentSucceededTimeout, err := osGetEnvDuration("KAFKA_HANDLER_PAYMENT_SUCCEEDED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED", false)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	strict, err := osGetBool("LIFECYCLE_STRICT_TRANSITIONS", true)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cashoutRequiresDelivery, err := osGetBool("LIFECYCLE_CASHOUT_REQUIRES_DELIVERY", true)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		LogLevel: osGetString("LOG_LEVEL", defaultLogLevel),
		Tasks: Tasks{
			PaymentReconcileInterval: reconcileInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: databaseFromEnv(),
		Lifecycle: Lifecycle{
			StrictTransitions:       strict,
			CashoutRequiresDelivery: cashoutRequiresDelivery,
		},
		Firebase: Firebase{
			CredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
			ServiceKey:      os.Getenv("FB_SERVICE_KEY"),
			ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		},
		PaymentGateway: PaymentGateway{
			SecretKey: os.Getenv("PAYMENT_GATEWAY_KEY"),
			Currency:  strings.ToLower(osGetString("PAYMENT_CURRENCY", defaultCurrency)),
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Topics: KafkaTopics{
				PaymentSucceeded:    os.Getenv("KAFKA_TOPIC_PAYMENT_SUCCEEDED"),
				ParcelStatusChanged: os.Getenv("KAFKA_TOPIC_PARCEL_STATUS_CHANGED"),
			},
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				PaymentSucceeded: PaymentSucceeded{
					ProcessTimeout: paymentSucceededTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if err := cfg.Database.Validate(); err != nil {
		return err
	}

	if cfg.Tasks.PaymentReconcileInterval == time.Duration(0) {
		return errors.New("BACKGROUND_PAYMENT_RECONCILE_INTERVAL is required")
	}

	return nil
}

func (d Database) Validate() error {
	if d.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if d.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if d.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if d.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if d.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if d.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

// DSN builds a postgres:// connection string usable by pgx and goose.
func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
		d.SSLMode,
	)
}

func (f Firebase) Validate() error {
	if f.CredentialsFile == "" && f.ServiceKey == "" {
		return errors.New("FIREBASE_CREDENTIALS_FILE or FB_SERVICE_KEY is required")
	}
	return nil
}

func (p PaymentGateway) Validate() error {
	if p.SecretKey == "" {
		return errors.New("PAYMENT_GATEWAY_KEY is required")
	}
	if p.Currency == "" {
		return errors.New("PAYMENT_CURRENCY is required")
	}
	return nil
}

// Enabled is false when no brokers are configured; the HTTP service then
// skips publishing parcel events.
func (k Kafka) Enabled() bool {
	return k.Brokers != ""
}

// BrokerList splits KAFKA_BROKERS on commas.
func (k Kafka) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Validate checks the consumer side of the Kafka section.
func (k Kafka) Validate() error {
	if k.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if k.Topics.PaymentSucceeded == "" {
		return errors.New("KAFKA_TOPIC_PAYMENT_SUCCEEDED is required")
	}
	if k.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if k.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if k.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if k.Handlers.PaymentSucceeded.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_PAYMENT_SUCCEEDED_PROCESS_TIMEOUT is required")
	}
	return nil
}

// ValidateProducer checks what the parcel event publisher needs.
func (k Kafka) ValidateProducer() error {
	if k.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if k.Topics.ParcelStatusChanged == "" {
		return errors.New("KAFKA_TOPIC_PARCEL_STATUS_CHANGED is required")
	}
	if k.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	return nil
}

func osGetString(s, def string) string {
	val := os.Getenv(s)
	if val == "" {
		return def
	}
	return val
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string, def bool) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
