// Package publish writes stored records to Kafka, one topic per record kind.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/observability"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher lazily manages one writer per kind topic.
type Publisher struct {
	brokers []string
	prefix  string
	metrics *observability.Metrics
	log     *slog.Logger

	mu        sync.Mutex
	writers   map[string]messageWriter
	newWriter func(topic string) messageWriter
}

// New creates a Publisher for the given brokers. Topics are named
// "<prefix>.<kind>".
func New(brokers []string, prefix string, metrics *observability.Metrics, log *slog.Logger) *Publisher {
	p := &Publisher{
		brokers: brokers,
		prefix:  prefix,
		metrics: metrics,
		log:     log,
		writers: make(map[string]messageWriter),
	}
	p.newWriter = p.kafkaWriter
	return p
}

// Topic returns the topic records of kind are published to.
func (p *Publisher) Topic(kind models.Kind) string {
	return p.prefix + "." + string(kind)
}

func (p *Publisher) kafkaWriter(topic string) messageWriter {
	return &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Async:        false,
	}
}

func (p *Publisher) writerForTopic(topic string) messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newWriter(topic)
	p.writers[topic] = w
	return w
}

// Publish writes each row as a message keyed by its record id. Rows are
// grouped per kind topic; the first failing topic aborts the call.
func (p *Publisher) Publish(ctx context.Context, rows []models.RecordRow) error {
	if len(rows) == 0 {
		return nil
	}

	batches := make(map[models.Kind][]kafka.Message)
	var order []models.Kind
	now := time.Now().UTC()
	for _, r := range rows {
		if _, ok := batches[r.Kind]; !ok {
			order = append(order, r.Kind)
		}
		batches[r.Kind] = append(batches[r.Kind], kafka.Message{
			Key:   []byte(r.ID.String()),
			Value: r.Payload,
			Time:  now,
			Headers: []kafka.Header{
				{Key: "identifier", Value: []byte(r.Identifier)},
			},
		})
	}

	for _, kind := range order {
		msgs := batches[kind]
		topic := p.Topic(kind)
		err := p.writerForTopic(topic).WriteMessages(ctx, msgs...)
		p.metrics.RecordsPublished(kind, len(msgs), err)
		if err != nil {
			return fmt.Errorf("publishing %d records to %s: %w", len(msgs), topic, err)
		}
		p.log.Debug("published records", "topic", topic, "count", len(msgs))
	}
	return nil
}

// Close releases all writers.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
