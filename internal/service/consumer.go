package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

type ConsumerState int32

const (
	ConsumerStopped ConsumerState = iota
	ConsumerStarting
	ConsumerRunning
	// ConsumerFailed means Start could not reach the bus. It is not retried.
	ConsumerFailed
)

func (s ConsumerState) String() string {
	switch s {
	case ConsumerStopped:
		return "stopped"
	case ConsumerStarting:
		return "starting"
	case ConsumerRunning:
		return "running"
	case ConsumerFailed:
		return "failed"
	}
	return "unknown"
}

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type DeadLetterWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type ConsumerOptions struct {
	// ManualCommit commits an offset only after the message was handled or dead-lettered.
	ManualCommit    bool
	DeadLetter      DeadLetterWriter
	DeadLetterTopic string
	// Connect is called by Start before the reader is created.
	Connect func(ctx context.Context) error
	// RetryBackoff is the pause after a failed read or dead-letter write.
	RetryBackoff time.Duration
}

// ReviewConsumer subscribes to the review topics and dispatches each message
// to the ReviewHandler. Handling failures are logged and never stop the loop.
type ReviewConsumer struct {
	newReader func() MessageReader
	handler   ReviewHandler
	opts      ConsumerOptions

	state atomic.Int32

	mu     sync.Mutex
	reader MessageReader
	cancel context.CancelFunc
	done   chan struct{}
}

func NewReviewConsumer(newReader func() MessageReader, handler ReviewHandler, opts ConsumerOptions) *ReviewConsumer {
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = time.Second
	}
	return &ReviewConsumer{newReader: newReader, handler: handler, opts: opts}
}

// Start connects and launches the receive loop in the background.
// On failure the consumer ends up in ConsumerFailed and the error is returned.
func (c *ReviewConsumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reader != nil {
		return nil
	}
	c.setState(ConsumerStarting)
	log.Info().Strs("topics", domain.ReviewTopics()).Bool("manual_commit", c.opts.ManualCommit).Msg("Starting review consumer")

	if c.opts.Connect != nil {
		if err := c.opts.Connect(ctx); err != nil {
			c.setState(ConsumerFailed)
			log.Error().Err(err).Msg("Failed to start review consumer")
			return fmt.Errorf("start review consumer: %w", err)
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	c.reader = c.newReader()
	c.cancel = cancel
	c.done = make(chan struct{})
	c.setState(ConsumerRunning)

	go c.run(loopCtx, c.reader, c.done)
	log.Info().Msg("Review consumer started")
	return nil
}

// Stop closes the reader and waits for the loop to exit. It is safe to call at any time.
func (c *ReviewConsumer) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reader == nil {
		c.setState(ConsumerStopped)
		return nil
	}

	c.cancel()
	err := c.reader.Close()
	<-c.done

	c.reader, c.cancel, c.done = nil, nil, nil
	c.setState(ConsumerStopped)
	if err != nil {
		log.Error().Err(err).Msg("Error stopping review consumer")
		return err
	}
	log.Info().Msg("Review consumer stopped")
	return nil
}

func (c *ReviewConsumer) State() ConsumerState {
	return ConsumerState(c.state.Load())
}

func (c *ReviewConsumer) IsConnected() bool {
	return c.State() == ConsumerRunning
}

func (c *ReviewConsumer) setState(s ConsumerState) {
	c.state.Store(int32(s))
}

func (c *ReviewConsumer) run(ctx context.Context, reader MessageReader, done chan struct{}) {
	defer close(done)
	for {
		var (
			msg kafka.Message
			err error
		)
		if c.opts.ManualCommit {
			msg, err = reader.FetchMessage(ctx)
		} else {
			msg, err = reader.ReadMessage(ctx)
		}
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			log.Error().Err(err).Msg("Error reading message")
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.opts.RetryBackoff):
			}
			continue
		}

		logger := messageLogger(msg)
		logger.Debug().Msg("Received message")

		handleErr := c.Process(ctx, msg)
		if handleErr != nil {
			logger.Error().Err(handleErr).Msg("Error processing message")
		}
		if !c.opts.ManualCommit {
			continue
		}

		if handleErr != nil && !c.deadLetterUntilDone(ctx, msg, handleErr, logger) {
			return
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error().Err(err).Msg("Failed to commit offset")
		}
	}
}

// Process decodes one message and dispatches it by topic. A panic in a handler is returned as an error.
func (c *ReviewConsumer) Process(ctx context.Context, msg kafka.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while handling message: %v", r)
		}
	}()

	var env domain.Envelope[json.RawMessage]
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	switch msg.Topic {
	case domain.TopicReviewCreated:
		var data domain.ReviewCreatedData
		if err := decodeData(env, &data); err != nil {
			return err
		}
		return c.handler.HandleCreated(ctx, data)
	case domain.TopicReviewUpdated:
		var data domain.ReviewUpdatedData
		if err := decodeData(env, &data); err != nil {
			return err
		}
		return c.handler.HandleUpdated(ctx, data)
	case domain.TopicReviewDeleted:
		var data domain.ReviewDeletedData
		if err := decodeData(env, &data); err != nil {
			return err
		}
		return c.handler.HandleDeleted(ctx, data)
	}
	return fmt.Errorf("unexpected topic %q", msg.Topic)
}

// deadLetterUntilDone retries the dead-letter write until it succeeds. The
// partition does not advance meanwhile, since committing a later offset would
// also commit this one. It reports false when ctx ends first.
func (c *ReviewConsumer) deadLetterUntilDone(ctx context.Context, msg kafka.Message, cause error, logger zerolog.Logger) bool {
	for {
		err := c.deadLetter(ctx, msg, cause)
		if err == nil {
			return true
		}
		logger.Error().Err(err).Dur("retry_in", c.opts.RetryBackoff).Msg("Failed to dead-letter message, offset not committed")
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.opts.RetryBackoff):
		}
	}
}

func (c *ReviewConsumer) deadLetter(ctx context.Context, msg kafka.Message, cause error) error {
	if c.opts.DeadLetter == nil || c.opts.DeadLetterTopic == "" {
		return errors.New("no dead-letter topic configured")
	}
	headers := make([]kafka.Header, 0, len(msg.Headers)+4)
	headers = append(headers, msg.Headers...)
	headers = append(headers,
		kafka.Header{Key: "x-source-topic", Value: []byte(msg.Topic)},
		kafka.Header{Key: "x-source-partition", Value: []byte(strconv.Itoa(msg.Partition))},
		kafka.Header{Key: "x-source-offset", Value: []byte(strconv.FormatInt(msg.Offset, 10))},
		kafka.Header{Key: "x-error", Value: []byte(cause.Error())},
	)
	return c.opts.DeadLetter.WriteMessages(ctx, kafka.Message{
		Topic:   c.opts.DeadLetterTopic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	})
}

func decodeData(env domain.Envelope[json.RawMessage], dest interface{}) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%s: missing data", env.EventType)
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decode %s data: %w", env.EventType, err)
	}
	return nil
}

func messageLogger(msg kafka.Message) zerolog.Logger {
	return log.With().
		Str("topic", msg.Topic).
		Int("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Logger()
}
