package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"logo-applier/internal/app"
	"logo-applier/internal/broker"
	kafka_impl "logo-applier/internal/broker/kafka"
	"logo-applier/internal/config"
	"logo-applier/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type jobExecutor interface {
	Execute(ctx context.Context, job domain.ProcessingJob) (*domain.BatchReport, error)
}

// Worker consumes jobs one at a time and publishes a JobResult for each.
type Worker struct {
	consumer broker.JobConsumer
	producer broker.ReportProducer
	executor jobExecutor
	retries  retry.Strategy
	logger   *zlog.Zerolog
	closer   func() error
}

func NewWorker(cfg *config.Config, logger *zlog.Zerolog) (*Worker, error) {
	components, err := app.Build(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build components: %w", err)
	}

	client := kafka_impl.NewKafkaClient(cfg)

	w := newWorker(client, client, components.Apply, cfg.DefaultRetryStrategy(), logger)
	w.closer = client.Close
	return w, nil
}

func newWorker(consumer broker.JobConsumer, producer broker.ReportProducer, executor jobExecutor, retries retry.Strategy, logger *zlog.Zerolog) *Worker {
	return &Worker{
		consumer: consumer,
		producer: producer,
		executor: executor,
		retries:  retries,
		logger:   logger,
	}
}

func (w *Worker) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		sig := <-sigChan
		w.logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
		cancel()
	}()

	w.logger.Info().Msg("Worker started")
	w.Consume(ctx)

	if w.closer != nil {
		if err := w.closer(); err != nil {
			w.logger.Error().Err(err).Msg("Failed to close broker client")
		}
	}

	w.logger.Info().Msg("Worker stopped")
	return nil
}

// Consume handles messages strictly in order until ctx is cancelled.
func (w *Worker) Consume(ctx context.Context) {
	for {
		msg, err := w.consumer.Fetch(ctx, w.retries)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error().Err(err).Msg("Failed to fetch message")
			continue
		}

		w.processMessage(ctx, msg)
	}
}

func (w *Worker) processMessage(ctx context.Context, msg kafka.Message) {
	var job domain.ProcessingJob
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		w.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to unmarshal job")
		w.sendResult(ctx, &domain.JobResult{
			JobID:  string(msg.Key),
			Status: domain.StatusFailed,
			Error:  fmt.Sprintf("Failed to unmarshal job: %v", err),
		})
		w.commit(ctx, msg)
		return
	}

	if job.ID == "" {
		job.ID = string(msg.Key)
	}

	w.logger.Info().
		Str("job_id", job.ID).
		Str("source", job.SourceFolder).
		Str("mode", string(job.Options.PositionMode)).
		Msg("Processing job")

	result := &domain.JobResult{JobID: job.ID, Status: domain.StatusCompleted}

	report, err := w.executor.Execute(ctx, job)
	if err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("Job rejected")
		result.Status = domain.StatusFailed
		result.Error = err.Error()
	} else {
		result.JobID = report.JobID
		result.Report = report
	}

	if err := w.sendResult(ctx, result); err != nil {
		// left uncommitted so the job is delivered again
		return
	}

	w.commit(ctx, msg)

	w.logger.Info().
		Str("job_id", result.JobID).
		Str("status", string(result.Status)).
		Msg("Job completed")
}

func (w *Worker) sendResult(ctx context.Context, result *domain.JobResult) error {
	value, err := json.Marshal(result)
	if err != nil {
		w.logger.Error().Err(err).Str("job_id", result.JobID).Msg("Failed to marshal result")
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := w.producer.Send(ctx, w.retries, []byte(result.JobID), value); err != nil {
		w.logger.Error().Err(err).Str("job_id", result.JobID).Msg("Failed to send result")
		return fmt.Errorf("failed to send result: %w", err)
	}

	return nil
}

func (w *Worker) commit(ctx context.Context, msg kafka.Message) {
	if err := w.consumer.Commit(ctx, msg); err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to commit message")
	}
}
