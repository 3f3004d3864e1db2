package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port             int
	OperationTimeout time.Duration
	CORSOrigins      []string
	DB               DB
	Redis            Redis
	Kafka            Kafka
	Payments         Payments
	RateLimit        RateLimit
	Pprof            Pprof
	Log              Log
}

// DB stores Postgres connection settings.
type DB struct {
	Host     string
	Port     string
	User     string
	Pass     string
	Name     string
	SSLMode  string
	MaxConns int
}

// DSN renders a pgx connection string with a bounded pool size.
func (d DB) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Pass),
		Host:   d.Host + ":" + d.Port,
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	if d.MaxConns > 0 {
		q.Set("pool_max_conns", strconv.Itoa(d.MaxConns))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Redis stores the settings of the per-parcel lock backend. Empty Addr selects the in-process locker.
type Redis struct {
	Addr     string
	Password string
	DB       int
	LockTTL  time.Duration
}

// Kafka stores settings of the payment notifications consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Payments stores payment gateway settings.
type Payments struct {
	StripeSecret string
	SiteDomain   string
	Currency     string
	Timeout      time.Duration
}

// RateLimit stores HTTP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores debug server settings. Empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Log stores logger settings.
type Log struct {
	Level  string
	Format string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:             DefaultPort(),
		OperationTimeout: defaultOperationTimeout,
		CORSOrigins:      []string{"*"},
		DB:               DefaultDB(),
		Redis:            DefaultRedis(),
		Kafka:            DefaultKafka(),
		Payments:         DefaultPayments(),
		RateLimit:        DefaultRateLimit(),
		Log:              DefaultLog(),
	}

	var errs []string
	env := envReader{errs: &errs}

	env.int("PORT", &cfg.Port)
	env.duration("OPERATION_TIMEOUT", &cfg.OperationTimeout)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	env.str("POSTGRES_HOST", &cfg.DB.Host)
	env.str("POSTGRES_USER", &cfg.DB.User)
	env.str("POSTGRES_PASSWORD", &cfg.DB.Pass)
	env.str("POSTGRES_DB", &cfg.DB.Name)
	env.str("POSTGRES_SSLMODE", &cfg.DB.SSLMode)
	env.int("POSTGRES_MAX_CONNS", &cfg.DB.MaxConns)
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			errs = append(errs, fmt.Sprintf("POSTGRES_PORT: %q is not a number", v))
		} else {
			cfg.DB.Port = v
		}
	}

	env.str("REDIS_ADDR", &cfg.Redis.Addr)
	env.str("REDIS_PASSWORD", &cfg.Redis.Password)
	env.int("REDIS_DB", &cfg.Redis.DB)
	env.duration("PARCEL_LOCK_TTL", &cfg.Redis.LockTTL)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	env.str("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	env.str("KAFKA_PAYMENTS_TOPIC", &cfg.Kafka.Topic)

	env.str("STRIPE_SECRET", &cfg.Payments.StripeSecret)
	env.str("SITE_DOMAIN", &cfg.Payments.SiteDomain)
	env.str("PAYMENT_CURRENCY", &cfg.Payments.Currency)
	env.duration("GATEWAY_TIMEOUT", &cfg.Payments.Timeout)

	env.bool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	env.float("RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	env.int("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	env.duration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	env.int("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)

	env.str("PPROF_ADDR", &cfg.Pprof.Addr)
	env.str("PPROF_USER", &cfg.Pprof.User)
	env.str("PPROF_PASS", &cfg.Pprof.Pass)

	env.str("LOG_LEVEL", &cfg.Log.Level)
	env.str("LOG_FORMAT", &cfg.Log.Format)

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug|info|warn|error")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid operation timeout: %s", c.OperationTimeout)
	}
	if c.Payments.Timeout <= 0 {
		return fmt.Errorf("invalid gateway timeout: %s", c.Payments.Timeout)
	}
	if c.Redis.LockTTL <= 0 {
		return fmt.Errorf("invalid parcel lock ttl: %s", c.Redis.LockTTL)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}
	return nil
}

type envReader struct{ errs *[]string }

func (e envReader) fail(key, v, kind string) {
	*e.errs = append(*e.errs, fmt.Sprintf("%s: %q is not a valid %s", key, v, kind))
}

func (e envReader) str(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (e envReader) int(key string, dst *int) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, "integer")
		return
	}
	*dst = n
}

func (e envReader) float(key string, dst *float64) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, "number")
		return
	}
	*dst = f
}

func (e envReader) bool(key string, dst *bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, "bool")
		return
	}
	*dst = b
}

func (e envReader) duration(key string, dst *time.Duration) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, "duration")
		return
	}
	*dst = d
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
