package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mark6482/restaurant-service/internal/domain"
	"github.com/Mark6482/restaurant-service/internal/service"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type probe bool

func (p probe) IsConnected() bool { return bool(p) }

func TestHealthCheck(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		db         service.Pinger
		producer   probe
		consumer   probe
		cache      service.Pinger
		wantStatus string
		wantDB     string
		wantRedis  string
	}{
		{name: "all up", db: up, producer: true, consumer: true, cache: up, wantStatus: service.StatusHealthy, wantDB: "connected", wantRedis: "connected"},
		{name: "producer down", db: up, producer: false, consumer: true, cache: up, wantStatus: service.StatusDegraded, wantDB: "connected", wantRedis: "connected"},
		{name: "consumer down", db: up, producer: true, consumer: false, cache: up, wantStatus: service.StatusDegraded, wantDB: "connected", wantRedis: "connected"},
		{name: "redis down is informational", db: up, producer: true, consumer: true, cache: down, wantStatus: service.StatusHealthy, wantDB: "connected", wantRedis: "disconnected"},
		{name: "database down", db: down, producer: false, consumer: false, cache: up, wantStatus: service.StatusError, wantDB: "disconnected", wantRedis: "connected"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := service.NewHealthService(testCase.db, testCase.producer, testCase.consumer, testCase.cache)

			report := svc.Check(context.Background())

			assert.Equal(t, testCase.wantStatus, report.Status)
			assert.Equal(t, testCase.wantDB, report.Database)
			assert.Equal(t, testCase.wantRedis, report.Redis)
			assert.Equal(t, bool(testCase.producer), report.KafkaProducer)
			assert.Equal(t, bool(testCase.consumer), report.KafkaConsumer)
			assert.Equal(t, domain.SourceService, report.Service)
			assert.False(t, report.Timestamp.IsZero())
			if testCase.wantStatus == service.StatusError {
				assert.Equal(t, "connection refused", report.Error)
			} else {
				assert.Empty(t, report.Error)
			}
		})
	}
}

type stubQRGenerator struct {
	calls []int
}

func (g *stubQRGenerator) Generate(restaurantID int) ([]byte, error) {
	g.calls = append(g.calls, restaurantID)
	return []byte("png"), nil
}

func TestQRService(t *testing.T) {
	store := newMemStore()
	rest := seedRestaurant(t, store, "Trattoria")
	gen := &stubQRGenerator{}
	svc := service.NewQRService(store, gen)

	png, err := svc.MenuQRCode(context.Background(), rest.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	_, err = svc.MenuQRCode(context.Background(), rest.ID+100)
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
	assert.Equal(t, []int{rest.ID}, gen.calls)
}

func TestDefaultQRGenerator(t *testing.T) {
	gen := service.DefaultQRGenerator{BaseURL: "https://menu.example.com/"}
	assert.Equal(t, "https://menu.example.com/restaurants/12/menu", gen.MenuURL(12))

	png, err := gen.Generate(12)
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), png[:8])
}
