package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"logo-applier/internal/domain"

	wbkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
)

type ProducerClient struct {
	producer *wbkafka.Producer
}

func NewProducerClient(brokers []string, topic string) *ProducerClient {
	return &ProducerClient{
		producer: wbkafka.NewProducer(brokers, topic),
	}
}

func (p *ProducerClient) Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error {
	return p.producer.SendWithRetry(ctx, strategy, key, value)
}

// SendJob publishes job keyed by its ID.
func (p *ProducerClient) SendJob(ctx context.Context, strategy retry.Strategy, job domain.ProcessingJob) error {
	value, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return p.Send(ctx, strategy, []byte(job.ID), value)
}

func (p *ProducerClient) Close() error {
	return p.producer.Close()
}
