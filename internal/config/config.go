package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Notifications stores remote notification service settings.
type Notifications struct {
	BaseURL     string
	Timeout     time.Duration
	PageLimit   int
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Kafka stores offer consumer settings. Empty brokers disable the
// consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Redis stores presence broadcast settings. Empty addr disables the
// broadcast.
type Redis struct {
	Addr        string
	PresenceTTL time.Duration
}

// RateLimit stores throttle settings for the notification mark
// endpoints.
type RateLimit struct {
	Limit  int
	Window time.Duration
	TTL    time.Duration
}

// Config stores service settings.
type Config struct {
	Port      int
	DebugPort int
	DriverID  string

	ToastDwell time.Duration

	DB            DB
	Notifications Notifications
	Kafka         Kafka
	Redis         Redis
	RateLimit     RateLimit
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:          DefaultPort(),
		DebugPort:     DefaultDebugPort(),
		DriverID:      os.Getenv("DRIVER_ID"),
		ToastDwell:    DefaultToastDwell(),
		DB:            DefaultDB(),
		Notifications: DefaultNotifications(),
		Kafka:         DefaultKafka(),
		Redis:         DefaultRedis(),
		RateLimit:     DefaultRateLimit(),
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.IntVar(&cfg.DebugPort, "debug-port", cfg.DebugPort, "pprof port (0 disables)")
	pflag.StringVar(&cfg.DriverID, "driver-id", cfg.DriverID, "driver this instance serves")
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}
	if v := os.Getenv("DEBUG_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DEBUG_PORT: %q", v)
		}
		cfg.DebugPort = p
	}

	setStr(&cfg.DB.Host, "POSTGRES_HOST")
	setStr(&cfg.DB.User, "POSTGRES_USER")
	setStr(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	setStr(&cfg.DB.Name, "POSTGRES_DB")
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid POSTGRES_PORT: %q", v)
		}
		cfg.DB.Port = v
	}

	setStr(&cfg.Notifications.BaseURL, "NOTIFICATIONS_BASE_URL")
	if err := setDuration(&cfg.Notifications.Timeout, "NOTIFICATIONS_TIMEOUT"); err != nil {
		return err
	}
	if v := os.Getenv("NOTIFICATIONS_PAGE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid NOTIFICATIONS_PAGE_LIMIT: %q", v)
		}
		cfg.Notifications.PageLimit = n
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitCSV(v)
	}
	setStr(&cfg.Kafka.Topic, "KAFKA_OFFER_TOPIC")
	setStr(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	setStr(&cfg.Redis.Addr, "REDIS_ADDR")
	if err := setDuration(&cfg.Redis.PresenceTTL, "REDIS_PRESENCE_TTL"); err != nil {
		return err
	}

	if err := setDuration(&cfg.ToastDwell, "TOAST_DWELL"); err != nil {
		return err
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.DebugPort < 0 || cfg.DebugPort > 65535 {
		return fmt.Errorf("invalid debug port: %d", cfg.DebugPort)
	}
	if cfg.DriverID == "" {
		return fmt.Errorf("driver id is required")
	}
	return nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = d
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
