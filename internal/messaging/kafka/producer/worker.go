package producer

import (
	"context"
	"time"

	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Config controls how the drain loop polls the outbox table.
type Config struct {
	PollInterval time.Duration
	BatchSize    int
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = 3 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	return c
}

// MessageWriter is the slice of kafka-go's Writer the worker needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Worker moves committed outbox rows to Kafka. Publish failures mark the row
// for retry; the repository's backoff decides when it becomes visible again.
type Worker struct {
	repo   kafka.OutboxRepository
	writer MessageWriter
	cfg    Config
	logger *zap.Logger
}

func NewWorker(repo kafka.OutboxRepository, writer MessageWriter, cfg Config, logger ...*zap.Logger) *Worker {
	l := zap.L().Named("kafka.producer.worker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.worker")
	}
	return &Worker{repo: repo, writer: writer, cfg: cfg.withDefaults(), logger: l}
}

// Run polls the outbox until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started",
		zap.Duration("poll_interval", w.cfg.PollInterval),
		zap.Int("batch_size", w.cfg.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain pulls batches until the table runs dry, so a backlog clears faster
// than one batch per tick.
func (w *Worker) Drain(ctx context.Context) {
	for {
		n, err := w.drainBatch(ctx)
		if err != nil {
			w.logger.Error("outbox drain failed", zap.Error(err))
			return
		}
		if n < w.cfg.BatchSize {
			return
		}
	}
}

func (w *Worker) drainBatch(ctx context.Context) (int, error) {
	events, err := w.repo.ListPending(ctx, w.cfg.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	sent, failed := 0, 0
	for _, event := range events {
		if err := w.writer.WriteMessages(ctx, outboxMessage(event)); err != nil {
			failed++
			w.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			_ = w.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	w.logger.Info("outbox batch drained", zap.Int("sent", sent), zap.Int("failed", failed))
	return len(events), nil
}
