package storage

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const (
	defaultProbeInterval = 10 * time.Second
	probeTimeout         = 2 * time.Second
)

// KafkaPublisher tracks whether the last write or broker probe succeeded.
// While disconnected, IsConnected re-dials the brokers at most once per ProbeInterval.
type KafkaPublisher struct {
	Writer        MessageWriter
	Dial          func(ctx context.Context, brokers []string) error
	ProbeInterval time.Duration

	brokers   []string
	connected atomic.Bool
	closed    atomic.Bool
	lastProbe atomic.Int64
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer, Dial: DialBrokers, ProbeInterval: defaultProbeInterval}
}

// Connect dials the brokers once so health reflects reachability before the first publish.
// The brokers are kept for later probes.
func (p *KafkaPublisher) Connect(ctx context.Context, brokers []string) error {
	p.brokers = brokers
	return p.probe(ctx)
}

func (p *KafkaPublisher) probe(ctx context.Context) error {
	p.lastProbe.Store(time.Now().UnixNano())
	err := p.Dial(ctx, p.brokers)
	p.connected.Store(err == nil && !p.closed.Load())
	return err
}

// DialBrokers succeeds as soon as one broker accepts a connection.
func DialBrokers(ctx context.Context, brokers []string) error {
	if len(brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	var errs []error
	for _, broker := range brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_ = conn.Close()
		return nil
	}
	return errors.Join(errs...)
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, value []byte) error {
	err := p.Writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	p.connected.Store(err == nil)
	return err
}

func (p *KafkaPublisher) IsConnected() bool {
	if p.connected.Load() {
		return true
	}
	if p.closed.Load() || len(p.brokers) == 0 {
		return false
	}
	last := p.lastProbe.Load()
	if time.Since(time.Unix(0, last)) < p.ProbeInterval || !p.lastProbe.CompareAndSwap(last, time.Now().UnixNano()) {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return p.probe(ctx) == nil
}

func (p *KafkaPublisher) Close() error {
	p.closed.Store(true)
	p.connected.Store(false)
	return p.Writer.Close()
}
