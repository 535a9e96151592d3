package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

// EventPublisher emits catalog events after their transaction has committed.
// Failures are logged and never reach the caller.
type EventPublisher struct {
	bus     MessagePublisher
	timeout time.Duration
	now     func() time.Time
}

func NewEventPublisher(bus MessagePublisher, timeout time.Duration) *EventPublisher {
	return &EventPublisher{bus: bus, timeout: timeout, now: time.Now}
}

func (p *EventPublisher) Publish(ctx context.Context, payload domain.Payload) {
	env := domain.NewEnvelope(payload, p.now())
	logger := log.With().
		Str("event_type", env.EventType).
		Str("event_id", env.EventID).
		Logger()

	body, err := json.Marshal(env)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode event")
		return
	}

	// The request may already be finished; the event still has to go out.
	pubCtx := context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		pubCtx, cancel = context.WithTimeout(pubCtx, p.timeout)
		defer cancel()
	}

	if err := p.bus.Publish(pubCtx, env.EventType, payload.PartitionKey(), body); err != nil {
		logger.Error().Err(err).Msg("Failed to publish event")
		return
	}
	logger.Debug().Msg("Event published")
}

func (p *EventPublisher) IsConnected() bool {
	return p.bus.IsConnected()
}

var _ Events = (*EventPublisher)(nil)
