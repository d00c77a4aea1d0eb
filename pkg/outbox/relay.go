package outbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

type Store interface {
	// FetchPending returns up to batchSize unprocessed records with
	// RetryCount below maxRetries, oldest OccurredAt first.
	FetchPending(ctx context.Context, batchSize, maxRetries int) ([]Record, error)
	// SaveResults persists the processed/failed state of a whole batch
	// in a single transaction.
	SaveResults(ctx context.Context, records []Record) error
}

// Relay polls the outbox store, publishes each pending record to the
// broker, and persists the batch outcome. A record that keeps failing is
// quarantined once RetryCount reaches maxRetries: the fetch query stops
// returning it, and the stored error stays visible for inspection.
type Relay struct {
	log         *slog.Logger
	store       Store
	publisher   Publisher
	projections *ProjectionRegistry

	interval   time.Duration
	errorDelay time.Duration
	batchSize  int
	maxRetries int
}

type RelayOption func(*Relay)

func WithInterval(d time.Duration) RelayOption {
	return func(r *Relay) { r.interval = d }
}

func WithErrorDelay(d time.Duration) RelayOption {
	return func(r *Relay) { r.errorDelay = d }
}

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) { r.batchSize = n }
}

func WithMaxRetries(n int) RelayOption {
	return func(r *Relay) { r.maxRetries = n }
}

func NewRelay(log *slog.Logger, store Store, publisher Publisher, projections *ProjectionRegistry, opts ...RelayOption) *Relay {
	r := &Relay{
		log:         log,
		store:       store,
		publisher:   publisher,
		projections: projections,
		interval:    5 * time.Second,
		errorDelay:  10 * time.Second,
		batchSize:   50,
		maxRetries:  5,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loops until ctx is cancelled. A failure inside a cycle is logged
// and followed by the longer error delay; it never stops the loop.
func (r *Relay) Run(ctx context.Context) error {
	r.log.Info("outbox relay started", "interval", r.interval, "batch_size", r.batchSize)

	for {
		delay := r.interval
		if err := r.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				r.log.Info("outbox relay stopping")
				return nil
			}
			r.log.Error("relay cycle failed", "err", err)
			delay = r.errorDelay
		}

		select {
		case <-ctx.Done():
			r.log.Info("outbox relay stopping")
			return nil
		case <-time.After(delay):
		}
	}
}

// Cycle runs one fetch/publish/persist pass. Per-record failures are
// recorded on the record and do not abort the rest of the batch.
func (r *Relay) Cycle(ctx context.Context) error {
	records, err := r.store.FetchPending(ctx, r.batchSize, r.maxRetries)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	r.log.Debug("processing pending records", "count", len(records))

	processed, failed := 0, 0
	for i := range records {
		rec := &records[i]
		if err := r.publishRecord(ctx, rec); err != nil {
			rec.MarkFailed(err.Error())
			failed++
			r.log.Warn("record publish failed",
				"record_id", rec.ID, "event_type", rec.EventType, "retry_count", rec.RetryCount, "err", err)
			continue
		}
		rec.MarkProcessed()
		processed++
	}

	if err := r.store.SaveResults(ctx, records); err != nil {
		return err
	}

	r.log.Info("batch processed", "processed", processed, "failed", failed)
	return nil
}

func (r *Relay) publishRecord(ctx context.Context, rec *Record) error {
	queue, env, err := r.projections.Project(rec.EventType, rec.Payload)
	if err != nil {
		return err
	}

	body, err := json.Marshal(env)
	if err != nil {
		return err
	}

	return r.publisher.Publish(ctx, queue, body)
}
