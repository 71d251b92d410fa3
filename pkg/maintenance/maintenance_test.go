package maintenance_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/redisessions/pkg/keyspace"
	"github.com/dmitrymomot/redisessions/pkg/maintenance"
	"github.com/dmitrymomot/redisessions/pkg/serializer"
	"github.com/dmitrymomot/redisessions/pkg/sessionpg"
	"github.com/dmitrymomot/redisessions/pkg/sessions"
)

const testPrefix = "sessions_test"

// fakeRecordStore is an in-memory RecordStore used in place of PostgreSQL.
type fakeRecordStore struct {
	mu      sync.Mutex
	records map[string]sessionpg.Record
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string]sessionpg.Record)}
}

func (f *fakeRecordStore) Upsert(_ context.Context, rec sessionpg.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[rec.SessionKey] = rec
	return nil
}

func (f *fakeRecordStore) ForEach(_ context.Context, fn func(sessionpg.Record) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRecordStore) DeleteAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.records))
	f.records = make(map[string]sessionpg.Record)
	return n, nil
}

func newTestOperator(t *testing.T) (*miniredis.Miniredis, *redis.Client, *fakeRecordStore, *maintenance.Operator) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := newFakeRecordStore()
	op := maintenance.New(client, keyspace.New(testPrefix), serializer.JSON{}, store)
	return mr, client, store, op
}

func newSession(t *testing.T, client *redis.Client, data map[string]any) *sessions.Store {
	t.Helper()

	sess, err := sessions.New(
		sessions.Config{Prefix: testPrefix, Expire: time.Hour},
		sessions.WithClient(client),
	)
	require.NoError(t, err)
	for k, v := range data {
		sess.Set(k, v)
	}
	require.NoError(t, sess.Save(context.Background()))
	return sess
}

func TestOperator_FlushRedis(t *testing.T) {
	ctx := context.Background()
	mr, client, _, op := newTestOperator(t)

	newSession(t, client, map[string]any{"a": "1"})
	newSession(t, client, map[string]any{"b": "2"})
	newSession(t, client, map[string]any{"c": "3"})

	// A key outside the namespace must survive the flush.
	require.NoError(t, mr.Set("other:foo", "bar"))

	deleted, err := op.FlushRedis(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	assert.ElementsMatch(t, []string{"other:foo"}, mr.Keys())

	// Second flush finds nothing.
	deleted, err = op.FlushRedis(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestOperator_MigrateToPostgres(t *testing.T) {
	ctx := context.Background()
	_, client, store, op := newTestOperator(t)

	sess := newSession(t, client, map[string]any{"foo": "bar", "nonascii": "тест"})

	summary, err := op.MigrateToPostgres(ctx)
	require.NoError(t, err)
	assert.Equal(t, maintenance.Summary{Migrated: 1}, summary)

	rec, ok := store.records[sess.Key()]
	require.True(t, ok)
	assert.False(t, rec.Expired())

	payload, err := sessionpg.DecodeData(rec.SessionData)
	require.NoError(t, err)
	data, err := serializer.JSON{}.Loads(payload)
	require.NoError(t, err)
	assert.Equal(t, "bar", data["foo"])
	assert.Equal(t, "тест", data["nonascii"])
}

func TestOperator_MigrateToPostgresIdempotent(t *testing.T) {
	ctx := context.Background()
	_, client, store, op := newTestOperator(t)

	newSession(t, client, map[string]any{"foo": "bar"})
	newSession(t, client, map[string]any{"baz": "qux"})

	first, err := op.MigrateToPostgres(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Migrated)

	second, err := op.MigrateToPostgres(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Migrated)

	assert.Len(t, store.records, 2, "re-running must not duplicate rows")
}

func TestOperator_MigrateToPostgresIsolatesCorruptRecords(t *testing.T) {
	ctx := context.Background()
	mr, client, store, op := newTestOperator(t)

	newSession(t, client, map[string]any{"foo": "bar"})
	require.NoError(t, mr.Set(testPrefix+":corrupt", "\x80garbage"))

	summary, err := op.MigrateToPostgres(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Migrated)
	assert.Equal(t, 1, summary.Failed)

	_, ok := store.records["corrupt"]
	assert.False(t, ok)
}

func TestOperator_MigrateToRedis(t *testing.T) {
	ctx := context.Background()
	mr, client, store, op := newTestOperator(t)

	payload, err := serializer.JSON{}.Dumps(map[string]any{"foo": "bar"})
	require.NoError(t, err)
	store.records["restored"] = sessionpg.Record{
		SessionKey:  "restored",
		SessionData: sessionpg.EncodeData(payload),
		ExpireDate:  time.Now().Add(time.Hour),
	}

	summary, err := op.MigrateToRedis(ctx)
	require.NoError(t, err)
	assert.Equal(t, maintenance.Summary{Migrated: 1}, summary)

	assert.True(t, mr.Exists(testPrefix+":restored"))
	assert.Greater(t, mr.TTL(testPrefix+":restored"), time.Duration(0))

	// The restored session loads through the engine with identical data.
	sess, err := sessions.New(
		sessions.Config{Prefix: testPrefix, Expire: time.Hour},
		sessions.WithClient(client),
		sessions.WithSessionKey("restored"),
	)
	require.NoError(t, err)

	data, err := sess.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bar", data["foo"])
}

func TestOperator_MigrateToRedisSkipsExpired(t *testing.T) {
	ctx := context.Background()
	mr, _, store, op := newTestOperator(t)

	payload, err := serializer.JSON{}.Dumps(map[string]any{"foo": "bar"})
	require.NoError(t, err)
	store.records["stale"] = sessionpg.Record{
		SessionKey:  "stale",
		SessionData: sessionpg.EncodeData(payload),
		ExpireDate:  time.Now().Add(-time.Minute),
	}

	summary, err := op.MigrateToRedis(ctx)
	require.NoError(t, err)
	assert.Equal(t, maintenance.Summary{Skipped: 1}, summary)
	assert.False(t, mr.Exists(testPrefix+":stale"))
}

func TestOperator_MigrateToRedisIsolatesInvalidRecords(t *testing.T) {
	ctx := context.Background()
	_, _, store, op := newTestOperator(t)

	store.records["broken"] = sessionpg.Record{
		SessionKey:  "broken",
		SessionData: "not base64!!!",
		ExpireDate:  time.Now().Add(time.Hour),
	}
	payload, err := serializer.JSON{}.Dumps(map[string]any{"foo": "bar"})
	require.NoError(t, err)
	store.records["fine"] = sessionpg.Record{
		SessionKey:  "fine",
		SessionData: sessionpg.EncodeData(payload),
		ExpireDate:  time.Now().Add(time.Hour),
	}

	summary, err := op.MigrateToRedis(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Migrated)
	assert.Equal(t, 1, summary.Failed)
}

func TestOperator_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, client, _, op := newTestOperator(t)

	sess := newSession(t, client, map[string]any{"foo": "bar", "n": 42})
	key := sess.Key()

	summary, err := op.MigrateToPostgres(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Migrated)

	deleted, err := op.FlushRedis(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, deleted)

	summary, err = op.MigrateToRedis(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Migrated)

	restored, err := sessions.New(
		sessions.Config{Prefix: testPrefix, Expire: time.Hour},
		sessions.WithClient(client),
		sessions.WithSessionKey(key),
	)
	require.NoError(t, err)

	data, err := restored.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bar", data["foo"])
	assert.EqualValues(t, 42, data["n"])
}

func TestOperator_FlushPostgres(t *testing.T) {
	ctx := context.Background()
	_, _, store, op := newTestOperator(t)

	store.records["a"] = sessionpg.Record{SessionKey: "a"}
	store.records["b"] = sessionpg.Record{SessionKey: "b"}

	n, err := op.FlushPostgres(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Empty(t, store.records)
}
