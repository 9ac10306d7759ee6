//go:build integration

package kafka_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"assetgate/internal/platform/kafka"
	"assetgate/internal/platform/kafka/consumer"
	"assetgate/pkg/domain"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/testutil/containers"
)

type collector struct {
	mu   sync.Mutex
	msgs []*consumer.Message
}

func (c *collector) Handle(_ context.Context, msg *consumer.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

type KafkaSuite struct {
	suite.Suite
	brokers []string
}

func TestKafkaSuite(t *testing.T) {
	suite.Run(t, new(KafkaSuite))
}

func (s *KafkaSuite) SetupSuite() {
	s.brokers = containers.GetManager().GetRedpanda(s.T()).Brokers
}

func (s *KafkaSuite) TestRelayRoundTrip() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "assetgate.audit.roundtrip"

	client, err := kafka.NewClient(s.brokers)
	s.Require().NoError(err)
	defer client.Close()

	s.Require().NoError(kafka.EnsureTopic(ctx, client, topic, 1, 1))
	s.Require().NoError(kafka.EnsureTopic(ctx, client, topic, 1, 1), "creating twice is a no-op")

	sink := kafka.NewSink(client, topic, domain.DeriveAddress("token"))
	s.Require().NoError(sink.Publish(ctx, []audit.Event{
		{Sequence: 1, Action: "transfer"},
		{Sequence: 2, Action: "paused"},
	}))

	reader, err := kafka.NewClient(s.brokers,
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer reader.Close()

	got := &collector{}
	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- consumer.New(reader, got, nil).Run(runCtx) }()

	s.Require().Eventually(func() bool { return got.count() == 2 }, 20*time.Second, 100*time.Millisecond)
	stop()
	<-done

	s.Equal("transfer", got.msgs[0].Headers[kafka.HeaderAction])
	s.Equal("2", got.msgs[1].Headers[kafka.HeaderSequence])
}
