package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Settings holds everything read from the environment at startup.
type Settings struct {
	AppPort string
	AppEnv  string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	FeedPageSize   int
	FeedCacheTTL   time.Duration
	UnfollowStrict bool

	BatchSize      int
	OutboxInterval time.Duration
	KafkaBrokers   []string
	KafkaTopic     string
}

// Init loads .env (when present), builds the logger and reads the
// environment, exiting on missing required values.
func Init() *Settings {
	s, err := Bootstrap()
	if err != nil {
		Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	return s
}

// Bootstrap loads .env, initializes Logger for APP_ENV and then reads
// Settings, so configuration errors always have a logger to report to.
func Bootstrap() (*Settings, error) {
	dotenvErr := godotenv.Load()
	InitLogger(getenv("APP_ENV", "development"))
	if dotenvErr != nil {
		Logger.Info("No .env file found, using system environment variables")
	}
	return Load()
}

// Load reads Settings from the process environment.
func Load() (*Settings, error) {
	s := &Settings{
		AppPort:        getenv("APP_PORT", "8080"),
		AppEnv:         getenv("APP_ENV", "development"),
		DBDriver:       strings.ToLower(getenv("DB_DRIVER", "mysql")),
		DBDSN:          os.Getenv("DB_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		KafkaTopic:     getenv("KAFKA_TOPIC", "yatube.events"),
		FeedPageSize:   10,
		FeedCacheTTL:   20 * time.Second,
		UnfollowStrict: true,
		BatchSize:      100,
		OutboxInterval: time.Second,
	}

	if s.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}
	if s.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is not set")
	}
	if s.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	switch s.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
	}

	var err error
	if s.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if s.FeedPageSize, err = intEnv("FEED_PAGE_SIZE", s.FeedPageSize); err != nil {
		return nil, err
	}
	if s.FeedPageSize <= 0 {
		return nil, fmt.Errorf("FEED_PAGE_SIZE must be positive")
	}
	if s.BatchSize, err = intEnv("BATCH_SIZE", s.BatchSize); err != nil {
		return nil, err
	}
	if s.BatchSize <= 0 {
		s.BatchSize = 100
	}
	if s.FeedCacheTTL, err = durationEnv("FEED_CACHE_TTL", s.FeedCacheTTL); err != nil {
		return nil, err
	}
	if s.OutboxInterval, err = durationEnv("OUTBOX_INTERVAL", s.OutboxInterval); err != nil {
		return nil, err
	}
	if v := os.Getenv("UNFOLLOW_STRICT"); v != "" {
		if s.UnfollowStrict, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("UNFOLLOW_STRICT: %w", err)
		}
	}
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			s.KafkaBrokers = append(s.KafkaBrokers, b)
		}
	}

	return s, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// durationEnv accepts Go durations ("20s") and bare seconds ("20").
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
