package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/couchcryptid/temperature-etl-service/internal/domain"
	"github.com/couchcryptid/temperature-etl-service/internal/observability"
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer converts a raw event into a converted reading.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.Reading, error)
}

// BatchLoader writes multiple converted readings to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, readings []domain.Reading) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Pipeline orchestrates the extract-transform-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has loaded at least one reading,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not converted any readings yet")
	}
	return nil
}

// Run executes the batch ETL loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	delay := initialBackoff
	for ctx.Err() == nil {
		if !p.processBatch(ctx, &delay) {
			break
		}
	}

	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// processBatch runs one extract-transform-load cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, delay *time.Duration) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err, "backoff", *delay)
		if !retry.SleepWithContext(ctx, *delay) {
			return false
		}
		*delay = retry.NextBackoff(*delay, maxBackoff)
		return true
	}
	if len(rawBatch) == 0 {
		return true
	}

	p.metrics.MessagesConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*delay = initialBackoff

	readings, converted := p.convert(ctx, rawBatch)
	if len(readings) == 0 {
		return true
	}

	if !p.load(ctx, readings) {
		return false
	}
	p.metrics.MessagesProduced.Add(float64(len(readings)))

	for _, raw := range converted {
		p.commitOffset(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return true
}

// convert transforms every message in the batch. Messages that fail are
// committed immediately so a poison message is never redelivered. It returns
// the readings alongside the raw events they came from.
func (p *Pipeline) convert(ctx context.Context, rawBatch []domain.RawEvent) ([]domain.Reading, []domain.RawEvent) {
	readings := make([]domain.Reading, 0, len(rawBatch))
	converted := make([]domain.RawEvent, 0, len(rawBatch))

	for _, raw := range rawBatch {
		reading, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("transform failed, skipping message",
				"error", err,
				"reason", failureReason(err),
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.WithLabelValues(failureReason(err)).Inc()
			p.commitOffset(ctx, raw)
			continue
		}
		readings = append(readings, reading)
		converted = append(converted, raw)
	}
	return readings, converted
}

// failureReason buckets transform errors for the transform_errors_total metric.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownUnit):
		return "unknown_unit"
	case errors.Is(err, domain.ErrInvalidValue):
		return "invalid_value"
	default:
		return "malformed"
	}
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// load retries the batch until it is written or ctx ends. The reader's fetch
// cursor has already moved past these messages, so fetching more before they
// land would let a later commit cover readings that were never written.
func (p *Pipeline) load(ctx context.Context, readings []domain.Reading) bool {
	delay := initialBackoff
	for {
		err := p.loader.LoadBatch(ctx, readings)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("load batch failed, retrying", "error", err, "batch_size", len(readings), "backoff", delay)
		if !retry.SleepWithContext(ctx, delay) {
			return false
		}
		delay = retry.NextBackoff(delay, maxBackoff)
	}
}
