package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/powerplan/core/factory"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/publisher"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
	cfg    Config
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("missing deadline")
	}
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func useFakeWriter(t *testing.T) *fakeWriter {
	t.Helper()
	fw := &fakeWriter{}
	orig := newWriter
	newWriter = func(cfg Config) messageWriter { fw.cfg = cfg; return fw }
	t.Cleanup(func() { newWriter = orig })
	return fw
}

func TestPlanPublisher_Publish(t *testing.T) {
	fw := useFakeWriter(t)
	p, err := NewPlanPublisher(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultTopic, fw.cfg.Topic)

	plan := model.ProductionPlan{
		ID:        "p1",
		Timestamp: time.Unix(1700000000, 0).UTC(),
		Strategy:  "lp",
		Load:      480,
		Entries:   model.Plan{{Name: "windpark1", Power: 90}},
	}
	require.NoError(t, p.Publish(context.Background(), plan))
	require.Len(t, fw.msgs, 1)
	msg := fw.msgs[0]
	assert.Equal(t, "p1", string(msg.Key))
	assert.Equal(t, "lp", string(msg.Headers[0].Value))

	var decoded model.ProductionPlan
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, plan.ID, decoded.ID)
	assert.Equal(t, plan.Entries, decoded.Entries)
	assert.True(t, plan.Timestamp.Equal(decoded.Timestamp))

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}

func TestPlanPublisher_WriteError(t *testing.T) {
	fw := useFakeWriter(t)
	fw.err = errors.New("leader not available")
	p, err := NewPlanPublisher(Config{Brokers: []string{"localhost:9092"}, Topic: "plans"})
	require.NoError(t, err)
	assert.Error(t, p.Publish(context.Background(), model.ProductionPlan{ID: "p"}))
}

func TestNewPlanPublisher_RequiresBroker(t *testing.T) {
	_, err := NewPlanPublisher(Config{})
	assert.Error(t, err)
}

func TestPublisherFactory(t *testing.T) {
	fw := useFakeWriter(t)
	pub, err := publisher.NewPublisher([]factory.ModuleConfig{{
		Type: "kafka",
		Conf: map[string]any{"brokers": []any{"k1:9092", "k2:9092"}, "topic": "site.plans"},
	}})
	require.NoError(t, err)
	assert.IsType(t, &PlanPublisher{}, pub)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, fw.cfg.Brokers)
	assert.Equal(t, "site.plans", fw.cfg.Topic)
}
