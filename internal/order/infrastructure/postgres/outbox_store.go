package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/order-sync/pkg/outbox"
)

type OutboxStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewOutboxStore(log *slog.Logger, pool *pgxpool.Pool) *OutboxStore {
	return &OutboxStore{log: log, pool: pool}
}

func (s *OutboxStore) FetchPending(ctx context.Context, batchSize, maxRetries int) ([]outbox.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, event_type, payload, occurred_at, processed_at, is_processed, error, retry_count
		FROM outbox_events
		WHERE is_processed = false AND retry_count < $1
		ORDER BY occurred_at ASC
		LIMIT $2
	`, maxRetries, batchSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []outbox.Record
	for rows.Next() {
		var rec outbox.Record
		if err := rows.Scan(&rec.ID, &rec.EventType, &rec.Payload, &rec.OccurredAt,
			&rec.ProcessedAt, &rec.IsProcessed, &rec.Error, &rec.RetryCount); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveResults commits the outcome of a whole relay cycle in one
// transaction, so a batch of fifty records costs one commit, not fifty.
func (s *OutboxStore) SaveResults(ctx context.Context, records []outbox.Record) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			UPDATE outbox_events
			SET processed_at=$2, is_processed=$3, error=$4, retry_count=$5
			WHERE id=$1
		`, rec.ID, rec.ProcessedAt, rec.IsProcessed, rec.Error, rec.RetryCount)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertOutboxRecords(ctx context.Context, tx pgx.Tx, records []outbox.Record) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			INSERT INTO outbox_events (id, event_type, payload, occurred_at, is_processed, retry_count)
			VALUES ($1,$2,$3,$4,false,0)
		`, rec.ID, rec.EventType, rec.Payload, rec.OccurredAt)
	}
	return tx.SendBatch(ctx, batch).Close()
}
