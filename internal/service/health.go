package service

import (
	"context"
	"time"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
	StatusError    = "error"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type ConnectionProbe interface {
	IsConnected() bool
}

type HealthReport struct {
	Status        string    `json:"status"`
	Service       string    `json:"service"`
	Database      string    `json:"database"`
	KafkaProducer bool      `json:"kafka_producer"`
	KafkaConsumer bool      `json:"kafka_consumer"`
	Redis         string    `json:"redis,omitempty"`
	Error         string    `json:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// HealthService reports error when the store is unreachable and degraded
// when either bus side is down. Redis is informational only.
type HealthService struct {
	db       Pinger
	producer ConnectionProbe
	consumer ConnectionProbe
	cache    Pinger
	timeout  time.Duration
}

func NewHealthService(db Pinger, producer, consumer ConnectionProbe, cache Pinger) *HealthService {
	return &HealthService{db: db, producer: producer, consumer: consumer, cache: cache, timeout: 2 * time.Second}
}

func (s *HealthService) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := HealthReport{
		Status:        StatusHealthy,
		Service:       domain.SourceService,
		Database:      "connected",
		KafkaProducer: s.producer.IsConnected(),
		KafkaConsumer: s.consumer.IsConnected(),
		Timestamp:     time.Now().UTC(),
	}

	if s.cache != nil {
		report.Redis = "connected"
		if err := s.cache.Ping(ctx); err != nil {
			report.Redis = "disconnected"
		}
	}

	if err := s.db.Ping(ctx); err != nil {
		report.Status = StatusError
		report.Database = "disconnected"
		report.Error = err.Error()
		return report
	}
	if !report.KafkaProducer || !report.KafkaConsumer {
		report.Status = StatusDegraded
	}
	return report
}

var _ HealthServiceInterface = (*HealthService)(nil)
