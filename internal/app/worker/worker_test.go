package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/apply"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type fakeConsumer struct {
	messages  []kafka.Message
	committed []int64
	cancel    context.CancelFunc
}

func (c *fakeConsumer) Fetch(ctx context.Context, _ retry.Strategy) (kafka.Message, error) {
	if len(c.messages) == 0 {
		c.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := c.messages[0]
	c.messages = c.messages[1:]
	return msg, nil
}

func (c *fakeConsumer) Commit(_ context.Context, msg kafka.Message) error {
	c.committed = append(c.committed, msg.Offset)
	return nil
}

func (c *fakeConsumer) Close() error { return nil }

type fakeProducer struct {
	sent []domain.JobResult
	fail bool
}

func (p *fakeProducer) Send(_ context.Context, _ retry.Strategy, _, value []byte) error {
	if p.fail {
		return errors.New("broker down")
	}
	var r domain.JobResult
	if err := json.Unmarshal(value, &r); err != nil {
		return err
	}
	p.sent = append(p.sent, r)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

type fakeExecutor struct {
	jobs []domain.ProcessingJob
}

func (e *fakeExecutor) Execute(_ context.Context, job domain.ProcessingJob) (*domain.BatchReport, error) {
	e.jobs = append(e.jobs, job)
	if job.SourceFolder == "" {
		return nil, apply.ErrSourceNotFound
	}
	return &domain.BatchReport{JobID: job.ID, Total: 1, Processed: 1}, nil
}

func message(t *testing.T, offset int64, job domain.ProcessingJob) kafka.Message {
	t.Helper()
	value, err := json.Marshal(job)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(job.ID), Value: value, Offset: offset}
}

func strategy() retry.Strategy {
	return retry.Strategy{Attempts: 1, Delay: time.Millisecond, Backoff: 1}
}

func TestConsume_ProcessesInOrderAndCommits(t *testing.T) {
	zlog.Init()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := &fakeConsumer{cancel: cancel, messages: []kafka.Message{
		message(t, 1, domain.ProcessingJob{ID: "a", SourceFolder: "/in"}),
		{Key: []byte("broken"), Value: []byte("{"), Offset: 2},
		message(t, 3, domain.ProcessingJob{ID: "c"}),
	}}
	producer := &fakeProducer{}
	executor := &fakeExecutor{}

	newWorker(consumer, producer, executor, strategy(), &zlog.Logger).Consume(ctx)

	assert.Equal(t, []int64{1, 2, 3}, consumer.committed)
	require.Len(t, executor.jobs, 2)
	assert.Equal(t, "a", executor.jobs[0].ID)

	require.Len(t, producer.sent, 3)
	assert.Equal(t, domain.StatusCompleted, producer.sent[0].Status)
	require.NotNil(t, producer.sent[0].Report)
	assert.Equal(t, 1, producer.sent[0].Report.Processed)

	assert.Equal(t, "broken", producer.sent[1].JobID)
	assert.Equal(t, domain.StatusFailed, producer.sent[1].Status)

	assert.Equal(t, "c", producer.sent[2].JobID)
	assert.Equal(t, domain.StatusFailed, producer.sent[2].Status)
	assert.Contains(t, producer.sent[2].Error, apply.ErrSourceNotFound.Error())
	assert.Nil(t, producer.sent[2].Report)
}

func TestConsume_UnsentResultIsNotCommitted(t *testing.T) {
	zlog.Init()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := &fakeConsumer{cancel: cancel, messages: []kafka.Message{
		message(t, 7, domain.ProcessingJob{ID: "a", SourceFolder: "/in"}),
	}}

	newWorker(consumer, &fakeProducer{fail: true}, &fakeExecutor{}, strategy(), &zlog.Logger).Consume(ctx)

	assert.Empty(t, consumer.committed)
}
