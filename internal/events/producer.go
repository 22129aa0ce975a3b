// Package events publishes ticket lifecycle events to Kafka for
// human-handoff tooling and audit consumers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/alphora/alphora/internal/agent"
	"github.com/alphora/alphora/internal/config"
)

// ErrProducerClosed is returned when publishing after Close.
var ErrProducerClosed = errors.New("producer is closed")

const (
	EventTicketAnalyzed  = "ticket.analyzed"
	EventTicketEscalated = "ticket.escalated"
)

// TicketEvent is the wire shape published for each pipeline run.
type TicketEvent struct {
	Type      string                `json:"type"`
	TicketID  string                `json:"ticket_id"`
	Analysis  *agent.TicketAnalysis `json:"analysis"`
	Timestamp time.Time             `json:"timestamp"`
}

// Producer publishes ticket events to a Kafka topic.
type Producer struct {
	writer *kafka.Writer
	mu     sync.Mutex
	closed bool
}

func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Compression:  kafka.Gzip,
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: cfg.Timeout,
	}

	return &Producer{writer: writer}, nil
}

// PublishAnalysis emits a ticket.analyzed or ticket.escalated event keyed
// by ticket id.
func (p *Producer) PublishAnalysis(ctx context.Context, analysis *agent.TicketAnalysis) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrProducerClosed
	}
	p.mu.Unlock()

	eventType := EventTicketAnalyzed
	if analysis.Decision == agent.DecisionEscalate {
		eventType = EventTicketEscalated
	}

	event := TicketEvent{
		Type:      eventType,
		TicketID:  analysis.TicketID,
		Analysis:  analysis,
		Timestamp: time.Now(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(analysis.TicketID),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
