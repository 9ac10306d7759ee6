package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"assetgate/pkg/domain"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/platform/circuit"
)

type fakeProducer struct {
	err     error
	records []*kgo.Record
}

func (p *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	out := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		if p.err == nil {
			p.records = append(p.records, r)
		}
		out = append(out, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return out
}

type SinkSuite struct {
	suite.Suite
	producer *fakeProducer
	breaker  *circuit.Breaker
	sink     *Sink
	token    domain.Address
}

func TestSinkSuite(t *testing.T) {
	suite.Run(t, new(SinkSuite))
}

func (s *SinkSuite) SetupTest() {
	s.producer = &fakeProducer{}
	s.breaker = circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	s.token = domain.DeriveAddress("token")
	s.sink = NewSink(s.producer, "assetgate.audit", s.token,
		WithBreaker(s.breaker),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetricsRegisterer(prometheus.NewRegistry()),
	)
}

func (s *SinkSuite) TestPublishKeysAndHeaders() {
	events := []audit.Event{
		{Sequence: 1, Category: audit.CategoryCompliance, Action: "transfer", Amount: 10},
		{Sequence: 2, Category: audit.CategorySecurity, Action: "paused"},
	}
	s.Require().NoError(s.sink.Publish(context.Background(), events))
	s.Require().Len(s.producer.records, 2)

	r := s.producer.records[0]
	s.Equal("assetgate.audit", r.Topic)
	s.Equal(s.token.Bytes(), r.Key)
	s.Equal(kgo.RecordHeader{Key: HeaderAction, Value: []byte("transfer")}, r.Headers[1])

	var decoded audit.Event
	s.Require().NoError(json.Unmarshal(r.Value, &decoded))
	s.Equal(uint64(10), decoded.Amount)
	s.Equal("2", string(s.producer.records[1].Headers[2].Value))
}

func (s *SinkSuite) TestBrokerFailuresOpenAndCloseTheCircuit() {
	ctx := context.Background()
	events := []audit.Event{{Sequence: 1, Action: "transfer"}}

	s.producer.err = errors.New("broker down")
	s.Require().Error(s.sink.Publish(ctx, events))
	s.False(s.breaker.IsOpen())
	s.Require().Error(s.sink.Publish(ctx, events))
	s.True(s.breaker.IsOpen())

	s.producer.err = nil
	s.Require().NoError(s.sink.Publish(ctx, events))
	s.False(s.breaker.IsOpen())
}
