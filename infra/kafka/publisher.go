// Package kafka publishes production plans to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/kilianp07/powerplan/core/factory"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/publisher"
	"github.com/kilianp07/powerplan/infra/logger"
)

// DefaultTopic is used when Config.Topic is empty.
const DefaultTopic = "powerplan.plans"

// Config holds the Kafka writer settings.
type Config struct {
	Brokers      []string `json:"brokers"`
	Topic        string   `json:"topic"`
	WriteTimeout int      `json:"write_timeout_ms"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PlanPublisher writes each plan as one JSON message keyed by plan ID.
type PlanPublisher struct {
	w       messageWriter
	topic   string
	timeout time.Duration
	log     logger.Logger
}

var newWriter = func(cfg Config) messageWriter {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		RequiredAcks: kafka.RequireOne,
		Balancer:     &kafka.Hash{},
		Async:        false,
	}
}

// NewPlanPublisher creates a publisher for cfg.
func NewPlanPublisher(cfg Config) (*PlanPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	timeout := time.Duration(cfg.WriteTimeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PlanPublisher{
		w:       newWriter(cfg),
		topic:   cfg.Topic,
		timeout: timeout,
		log:     logger.New("kafka_publisher"),
	}, nil
}

// Publish writes the plan and waits for the broker acknowledgment.
func (p *PlanPublisher) Publish(ctx context.Context, plan model.ProductionPlan) error {
	b, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	msg := kafka.Message{
		Key:   []byte(plan.ID),
		Value: b,
		Time:  plan.Timestamp,
		Headers: []kafka.Header{
			{Key: "strategy", Value: []byte(plan.Strategy)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return err
	}
	p.log.Debugw("plan written", map[string]any{"topic": p.topic, "plan_id": plan.ID})
	return nil
}

// Close flushes and closes the writer.
func (p *PlanPublisher) Close() error { return p.w.Close() }

func init() {
	_ = publisher.RegisterPublisher("kafka", func(conf map[string]any) (publisher.Publisher, error) {
		var c Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPlanPublisher(c)
	})
}
