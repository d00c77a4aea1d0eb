package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	records  []Record
	fetchErr error
	saveErr  error
	trace    *[]string
}

func (s *fakeStore) FetchPending(_ context.Context, batchSize, maxRetries int) ([]Record, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	var out []Record
	for _, r := range s.records {
		if !r.IsProcessed && r.RetryCount < maxRetries {
			out = append(out, r)
		}
		if len(out) == batchSize {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) SaveResults(_ context.Context, records []Record) error {
	if s.trace != nil {
		*s.trace = append(*s.trace, "save")
	}
	if s.saveErr != nil {
		return s.saveErr
	}
	for _, rec := range records {
		for i := range s.records {
			if s.records[i].ID == rec.ID {
				s.records[i] = rec
			}
		}
	}
	return nil
}

type publishCall struct {
	queue string
	body  []byte
}

type fakePublisher struct {
	calls  []publishCall
	failFn func(queue string, body []byte) error
	trace  *[]string
}

func (p *fakePublisher) Publish(_ context.Context, queue string, body []byte) error {
	if p.failFn != nil {
		if err := p.failFn(queue, body); err != nil {
			return err
		}
	}
	p.calls = append(p.calls, publishCall{queue: queue, body: body})
	if p.trace != nil {
		*p.trace = append(*p.trace, "publish")
	}
	return nil
}

func testRegistry(t *testing.T) *ProjectionRegistry {
	t.Helper()
	reg := NewProjectionRegistry()
	reg.Register("EntityChanged<Product>", func(payload []byte) (string, Envelope, error) {
		var p struct {
			ID         uuid.UUID `json:"id"`
			ChangeType string    `json:"changeType"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", Envelope{}, err
		}
		env, err := NewEnvelope(p.ID, "Product", p.ChangeType, time.Now().UTC(), json.RawMessage(payload))
		if err != nil {
			return "", Envelope{}, err
		}
		return QueueName("Product"), env, nil
	})
	return reg
}

func productRecord(t *testing.T) Record {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"id": uuid.New(), "changeType": "Created"})
	require.NoError(t, err)
	return NewRecord("EntityChanged<Product>", payload)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCycleMarksProcessedAfterPublish(t *testing.T) {
	trace := []string{}
	store := &fakeStore{records: []Record{productRecord(t)}, trace: &trace}
	pub := &fakePublisher{trace: &trace}
	relay := NewRelay(testLogger(), store, pub, testRegistry(t))

	require.NoError(t, relay.Cycle(context.Background()))

	require.Len(t, pub.calls, 1)
	require.Equal(t, "entity.changed.product", pub.calls[0].queue)
	require.True(t, store.records[0].IsProcessed)
	require.NotNil(t, store.records[0].ProcessedAt)
	require.Nil(t, store.records[0].Error)

	// the envelope was published before the processed mark was persisted
	require.Equal(t, []string{"publish", "save"}, trace)
}

func TestCycleRecordsPublishFailure(t *testing.T) {
	store := &fakeStore{records: []Record{productRecord(t)}}
	pub := &fakePublisher{failFn: func(string, []byte) error { return errors.New("broker down") }}
	relay := NewRelay(testLogger(), store, pub, testRegistry(t))

	require.NoError(t, relay.Cycle(context.Background()))

	rec := store.records[0]
	require.False(t, rec.IsProcessed)
	require.Equal(t, 1, rec.RetryCount)
	require.NotNil(t, rec.Error)
	require.Contains(t, *rec.Error, "broker down")
}

func TestBoundedRetryQuarantinesRecord(t *testing.T) {
	store := &fakeStore{records: []Record{productRecord(t)}}
	pub := &fakePublisher{failFn: func(string, []byte) error { return errors.New("always fails") }}
	relay := NewRelay(testLogger(), store, pub, testRegistry(t), WithMaxRetries(5))

	for i := 0; i < 7; i++ {
		require.NoError(t, relay.Cycle(context.Background()))
	}

	rec := store.records[0]
	require.Equal(t, 5, rec.RetryCount)
	require.False(t, rec.IsProcessed)

	fetched, err := store.FetchPending(context.Background(), 50, 5)
	require.NoError(t, err)
	require.Empty(t, fetched)
}

func TestBatchIsolation(t *testing.T) {
	first := productRecord(t)
	second := productRecord(t)
	third := productRecord(t)
	store := &fakeStore{records: []Record{first, second, third}}

	var poison struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(first.Payload, &poison))

	pub := &fakePublisher{failFn: func(_ string, body []byte) error {
		var env Envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return err
		}
		if env.EntityID == poison.ID {
			return errors.New("poison")
		}
		return nil
	}}
	relay := NewRelay(testLogger(), store, pub, testRegistry(t))

	require.NoError(t, relay.Cycle(context.Background()))

	require.False(t, store.records[0].IsProcessed)
	require.Equal(t, 1, store.records[0].RetryCount)
	require.True(t, store.records[1].IsProcessed)
	require.True(t, store.records[2].IsProcessed)
	require.Len(t, pub.calls, 2)
}

func TestUnsupportedEventTypeMarkedFailed(t *testing.T) {
	rec := NewRecord("EntityChanged<Warehouse>", []byte(`{}`))
	store := &fakeStore{records: []Record{rec}}
	pub := &fakePublisher{}
	relay := NewRelay(testLogger(), store, pub, testRegistry(t))

	require.NoError(t, relay.Cycle(context.Background()))

	require.False(t, store.records[0].IsProcessed)
	require.Equal(t, 1, store.records[0].RetryCount)
	require.Contains(t, *store.records[0].Error, "unsupported event type")
	require.Empty(t, pub.calls)
}

func TestCycleReturnsFetchError(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("db gone")}
	relay := NewRelay(testLogger(), store, &fakePublisher{}, testRegistry(t))

	err := relay.Cycle(context.Background())
	require.ErrorContains(t, err, "db gone")
}

func TestRunStopsOnCancel(t *testing.T) {
	store := &fakeStore{}
	relay := NewRelay(testLogger(), store, &fakePublisher{}, testRegistry(t),
		WithInterval(time.Millisecond), WithErrorDelay(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop on cancellation")
	}
}

func TestRunContinuesAfterCycleFailure(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("transient")}
	relay := NewRelay(testLogger(), store, &fakePublisher{}, testRegistry(t),
		WithInterval(time.Millisecond), WithErrorDelay(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	// several error delays elapse; the loop must still be alive
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("relay terminated on a cycle failure")
	}
}
