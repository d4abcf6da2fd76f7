package config

import "time"

const (
	defaultPort      = 8080
	defaultDebugPort = 6060
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "driverhub",
	Pass: "driverhub",
	Name: "driverhub",
}

var defaultNotifications = Notifications{
	BaseURL:     "http://localhost:8090",
	Timeout:     5 * time.Second,
	PageLimit:   50,
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultKafka = Kafka{
	Topic:   "driver-offers",
	GroupID: "driverhub",
}

var defaultRedis = Redis{
	PresenceTTL: 90 * time.Second,
}

const defaultToastDwell = 3 * time.Second

var defaultRateLimit = RateLimit{
	Limit:  10,
	Window: time.Second,
	TTL:    5 * time.Minute,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultDebugPort returns the default pprof port.
func DefaultDebugPort() int { return defaultDebugPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultNotifications returns the default notification service settings.
func DefaultNotifications() Notifications { return defaultNotifications }

// DefaultKafka returns the default offer consumer settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultRedis returns the default presence settings.
func DefaultRedis() Redis { return defaultRedis }

// DefaultToastDwell returns the default toast dwell period.
func DefaultToastDwell() time.Duration { return defaultToastDwell }

// DefaultRateLimit returns the default mark-endpoint throttle settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }
