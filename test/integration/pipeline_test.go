package integration

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	orderapp "github.com/dmehra2102/order-sync/internal/order/application"
	"github.com/dmehra2102/order-sync/internal/order/domain"
	orderpg "github.com/dmehra2102/order-sync/internal/order/infrastructure/postgres"
	syncapp "github.com/dmehra2102/order-sync/internal/sync/application"
	syncpg "github.com/dmehra2102/order-sync/internal/sync/infrastructure/postgres"
	"github.com/dmehra2102/order-sync/pkg/outbox"
	"github.com/dmehra2102/order-sync/pkg/rabbitmq"
)

const writeSchema = `
CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	sku TEXT NOT NULL,
	price NUMERIC NOT NULL,
	currency TEXT NOT NULL,
	stock_quantity INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ,
	is_active BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	event_type TEXT NOT NULL,
	payload JSONB NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL,
	processed_at TIMESTAMPTZ,
	is_processed BOOLEAN NOT NULL DEFAULT false,
	error TEXT,
	retry_count INT NOT NULL DEFAULT 0
);
`

// The read tables live in a separate database in production; a second
// schema in the same container keeps the test to one Postgres.
const readSchema = `
CREATE SCHEMA IF NOT EXISTS readside;
CREATE TABLE IF NOT EXISTS readside.products (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	sku TEXT NOT NULL,
	price NUMERIC NOT NULL,
	currency TEXT NOT NULL,
	stock_quantity INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ,
	is_active BOOLEAN NOT NULL
);
`

// TestProductChangeReachesReadModel drives the full path: a product write
// lands an outbox record, the relay publishes it to RabbitMQ, and the
// consumer dispatches it into the read store.
func TestProductChangeReachesReadModel(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION to run container-backed tests")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	require.NoError(t, err)
	defer env.Teardown(ctx)

	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, writeSchema)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, readSchema)
	require.NoError(t, err)

	log := slog.New(slog.DiscardHandler)

	readPool, err := pgxpool.New(ctx, env.PGURL+"&search_path=readside")
	require.NoError(t, err)
	defer readPool.Close()

	productRepo := orderpg.NewProductRepository(log, pool)
	productSvc := orderapp.NewProductService(productRepo)
	store := orderpg.NewOutboxStore(log, pool)

	publisher := rabbitmq.NewPublisher(log, rabbitmq.DefaultSettings(env.AMQPURL))
	defer publisher.Close()

	registry := outbox.NewProjectionRegistry()
	orderapp.RegisterProjections(registry)

	relay := outbox.NewRelay(log, store, publisher, registry,
		outbox.WithInterval(200*time.Millisecond))

	relayCtx, stopRelay := context.WithCancel(ctx)
	defer stopRelay()
	go func() { _ = relay.Run(relayCtx) }()

	readRepo := syncpg.NewProductReadRepository(log, readPool)
	handler := syncapp.NewProductHandler(log, readRepo)

	dispatcher := syncapp.NewDispatcher(log, nil)
	dispatcher.Register(domain.EntityProduct, handler.HandleRaw)

	consumer := rabbitmq.NewConsumer(log, rabbitmq.DefaultSettings(env.AMQPURL))

	consumeCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	go func() {
		_ = consumer.Consume(consumeCtx, outbox.QueueName(domain.EntityProduct), dispatcher.Dispatch)
	}()

	product, err := productSvc.Create(ctx, "Keyboard", "Mechanical, 87 keys", "KB-87",
		domain.NewMoney(decimal.NewFromInt(350), "BRL"), 10)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		row, err := readRepo.FindByID(ctx, product.ID)
		return err == nil && row != nil && row.SKU == "KB-87"
	}, 30*time.Second, 250*time.Millisecond, "product never reached the read model")

	// the outbox record must be marked processed as well
	require.Eventually(t, func() bool {
		var processed bool
		err := pool.QueryRow(ctx, `SELECT is_processed FROM outbox_events LIMIT 1`).Scan(&processed)
		return err == nil && processed
	}, 10*time.Second, 250*time.Millisecond, "outbox record never marked processed")
}
