package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the platform.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Identity     IdentityConfig
	Payment      PaymentConfig
	Storage      StorageConfig
	RateLimit    RateLimitConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	BaseURL               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string
	Encoding string
}

// IdentityConfig points at the hosted identity provider.
type IdentityConfig struct {
	BaseURL        string
	AnonKey        string
	ServiceRoleKey string
	JWTSecret      string
	RedirectURL    string
	TimeoutSeconds int
	CookieDomain   string
	CookieSecure   bool
}

// PaymentConfig points at the invoice provider.
type PaymentConfig struct {
	BaseURL         string
	APIKey          string
	TimeoutSeconds  int
	InvoiceDuration time.Duration
	// ReconcileInterval drives the background invoice sweep; zero
	// disables it.
	ReconcileInterval time.Duration
	SuccessURL        string
	FailureURL        string
}

// StorageConfig holds the S3-compatible storage endpoint used for bucket provisioning.
type StorageConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// RateLimitConfig bounds request rates on the auth endpoints.
type RateLimitConfig struct {
	AuthPerMinute int
	AuthBurst     int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "medikita-platform"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			BaseURL:               getEnv("APP_BASE_URL", "http://localhost:8080"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			CacheTTL: time.Duration(getEnvAsInt("REDIS_CACHE_TTL_SECONDS", 120)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Identity: IdentityConfig{
			BaseURL:        os.Getenv("IDENTITY_BASE_URL"),
			AnonKey:        os.Getenv("IDENTITY_ANON_KEY"),
			ServiceRoleKey: os.Getenv("IDENTITY_SERVICE_ROLE_KEY"),
			JWTSecret:      os.Getenv("IDENTITY_JWT_SECRET"),
			RedirectURL:    getEnv("IDENTITY_REDIRECT_URL", "http://localhost:8080/auth/callback"),
			TimeoutSeconds: getEnvAsInt("IDENTITY_TIMEOUT_SECONDS", 5),
			CookieDomain:   os.Getenv("IDENTITY_COOKIE_DOMAIN"),
			CookieSecure:   getEnvAsBool("IDENTITY_COOKIE_SECURE", false),
		},
		Payment: PaymentConfig{
			BaseURL:           getEnv("PAYMENT_BASE_URL", "https://api.xendit.co"),
			APIKey:            os.Getenv("PAYMENT_API_KEY"),
			TimeoutSeconds:    getEnvAsInt("PAYMENT_TIMEOUT_SECONDS", 10),
			InvoiceDuration:   time.Duration(getEnvAsInt("PAYMENT_INVOICE_DURATION_SECONDS", 86400)) * time.Second,
			ReconcileInterval: time.Duration(getEnvAsInt("PAYMENT_RECONCILE_INTERVAL_SECONDS", 300)) * time.Second,
			SuccessURL:        getEnv("PAYMENT_SUCCESS_URL", "http://localhost:8080/dashboard"),
			FailureURL:        getEnv("PAYMENT_FAILURE_URL", "http://localhost:8080/dashboard"),
		},
		Storage: StorageConfig{
			Endpoint:  os.Getenv("STORAGE_S3_ENDPOINT"),
			Region:    getEnv("STORAGE_S3_REGION", "ap-southeast-1"),
			AccessKey: os.Getenv("STORAGE_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("STORAGE_S3_SECRET_KEY"),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: getEnvAsInt("RATE_LIMIT_AUTH_PER_MINUTE", 30),
			AuthBurst:     getEnvAsInt("RATE_LIMIT_AUTH_BURST", 10),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@medikita.id"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the bounded network timeout for identity provider calls.
func (i IdentityConfig) Timeout() time.Duration {
	if i.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(i.TimeoutSeconds) * time.Second
}

// Timeout returns the bounded network timeout for payment provider calls.
func (p PaymentConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
