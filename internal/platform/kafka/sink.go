package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/twmb/franz-go/pkg/kgo"

	"assetgate/pkg/domain"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/platform/circuit"
)

// Record headers set on every relayed event.
const (
	HeaderCategory = "category"
	HeaderAction   = "action"
	HeaderSequence = "sequence"
)

// Producer is the part of *kgo.Client the sink uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Sink produces audit events to one topic. Every record is keyed by the token
// address so the whole stream lands on one partition in sequence order.
type Sink struct {
	producer Producer
	topic    string
	key      []byte
	breaker  *circuit.Breaker
	logger   *slog.Logger
	open     prometheus.Gauge
}

// SinkOption configures a Sink.
type SinkOption func(*Sink)

func WithLogger(logger *slog.Logger) SinkOption {
	return func(s *Sink) {
		s.logger = logger
	}
}

func WithBreaker(b *circuit.Breaker) SinkOption {
	return func(s *Sink) {
		s.breaker = b
	}
}

// WithMetricsRegisterer exports the breaker state as a gauge on reg.
func WithMetricsRegisterer(reg prometheus.Registerer) SinkOption {
	return func(s *Sink) {
		s.open = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "assetgate_audit_relay_circuit_open",
			Help: "1 while the audit relay considers the broker unavailable",
		})
	}
}

func NewSink(producer Producer, topic string, token domain.Address, opts ...SinkOption) *Sink {
	s := &Sink{
		producer: producer,
		topic:    topic,
		key:      token.Bytes(),
		breaker:  circuit.New("kafka-audit-sink"),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish produces events synchronously. The batch is accepted only when
// every record was acknowledged.
func (s *Sink) Publish(ctx context.Context, events []audit.Event) error {
	records := make([]*kgo.Record, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("kafka: encode event %d: %w", e.Sequence, err)
		}
		records = append(records, &kgo.Record{
			Topic: s.topic,
			Key:   s.key,
			Value: value,
			Headers: []kgo.RecordHeader{
				{Key: HeaderCategory, Value: []byte(e.Category)},
				{Key: HeaderAction, Value: []byte(e.Action)},
				{Key: HeaderSequence, Value: []byte(strconv.FormatUint(e.Sequence, 10))},
			},
		})
	}

	if err := s.producer.ProduceSync(ctx, records...).FirstErr(); err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.ErrorContext(ctx, "audit relay circuit opened", "topic", s.topic, "error", err)
			s.setOpen(1)
		}
		return fmt.Errorf("kafka: produce %d events: %w", len(records), err)
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "audit relay circuit closed", "topic", s.topic)
		s.setOpen(0)
	}
	return nil
}

func (s *Sink) setOpen(v float64) {
	if s.open != nil {
		s.open.Set(v)
	}
}
