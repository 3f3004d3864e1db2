package config

import "time"

const (
	defaultPort             = 8080
	defaultOperationTimeout = 3 * time.Second
)

var defaultDB = DB{
	Host:     "127.0.0.1",
	Port:     "5432",
	User:     "myuser",
	Pass:     "mypassword",
	Name:     "parcel_db",
	SSLMode:  "disable",
	MaxConns: 10,
}

var defaultRedis = Redis{
	LockTTL: 10 * time.Second,
}

var defaultKafka = Kafka{
	GroupID: "parcel-service",
	Topic:   "payments.notifications",
}

var defaultPayments = Payments{
	SiteDomain: "http://localhost:5173",
	Currency:   "usd",
	Timeout:    5 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       5,
	Burst:      10,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultLog = Log{
	Level:  "info",
	Format: "json",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRedis returns the default lock backend settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultKafka returns the default consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultPayments returns the default payment gateway settings.
func DefaultPayments() Payments {
	return defaultPayments
}

// DefaultRateLimit returns the default rate limiting settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultLog returns the default logger settings.
func DefaultLog() Log {
	return defaultLog
}
