package broker

import (
	"context"

	"github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/retry"
)

// JobConsumer delivers job messages one at a time. A message is committed
// only after its report has been published.
type JobConsumer interface {
	Fetch(ctx context.Context, strategy retry.Strategy) (kafka.Message, error)
	Commit(ctx context.Context, msg kafka.Message) error
	Close() error
}

type ReportProducer interface {
	Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error
	Close() error
}
