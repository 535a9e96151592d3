package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	CommitAuto   = "auto"
	CommitManual = "manual"
)

type Config struct {
	ServerPort string

	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisHost      string
	RedisPort      string
	RatingCacheTTL time.Duration

	KafkaBrokers        []string
	KafkaConsumerGroup  string
	KafkaPublishTimeout time.Duration
	KafkaCommitMode     string
	KafkaDLQTopic       string

	RatingResetOnEmpty bool
	PublicBaseURL      string
	LogLevel           string
	Environment        string
}

// Load reads the configuration from the environment. Malformed numbers and
// booleans are errors; missing values take their defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8001"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBName:             getEnv("DB_NAME", "restaurant_db"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "restaurant-service-reviews-v2"),
		KafkaCommitMode:    strings.ToLower(getEnv("KAFKA_COMMIT_MODE", CommitAuto)),
		KafkaDLQTopic:      getEnv("KAFKA_DLQ_TOPIC", "restaurant.reviews.dlq"),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", "http://localhost:8001"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Environment:        getEnv("ENVIRONMENT", "production"),
	}

	var err error
	if cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 25); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	ttl, err := getInt("RATING_CACHE_TTL_SEC", 86400)
	if err != nil {
		return nil, err
	}
	cfg.RatingCacheTTL = time.Duration(ttl) * time.Second
	timeout, err := getInt("KAFKA_PUBLISH_TIMEOUT_MS", 5000)
	if err != nil {
		return nil, err
	}
	cfg.KafkaPublishTimeout = time.Duration(timeout) * time.Millisecond
	if cfg.RatingResetOnEmpty, err = getBool("RATING_RESET_ON_EMPTY", false); err != nil {
		return nil, err
	}

	if cfg.KafkaCommitMode != CommitAuto && cfg.KafkaCommitMode != CommitManual {
		return nil, fmt.Errorf("KAFKA_COMMIT_MODE must be %q or %q, got %q", CommitAuto, CommitManual, cfg.KafkaCommitMode)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must not be empty")
	}
	return cfg, nil
}

func (c *Config) ManualCommit() bool {
	return c.KafkaCommitMode == CommitManual
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func MustInitPostgres(cfg *Config) *sqlx.DB {
	db, err := sqlx.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	return client
}

// NewKafkaReader subscribes the consumer group to topics. A new group starts from the earliest offset.
func NewKafkaReader(cfg *Config, topics []string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.KafkaBrokers,
		GroupID:     cfg.KafkaConsumerGroup,
		GroupTopics: topics,
		StartOffset: kafka.FirstOffset,
	})
}

// NewKafkaWriter returns a writer without a fixed topic; every message names its own.
func NewKafkaWriter(cfg *Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.KafkaPublishTimeout,
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getBool(key string, def bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
