package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redisessions/pkg/keyspace"
	"github.com/dmitrymomot/redisessions/pkg/serializer"
	"github.com/dmitrymomot/redisessions/pkg/sessionpg"
)

// defaultScanBatchSize keeps SCAN pages small enough not to block Redis.
const defaultScanBatchSize = 1000

// defaultRecordTTL is assigned to keys that carry no TTL in Redis when they
// are transferred to the relational store, which requires an absolute expiry.
const defaultRecordTTL = 14 * 24 * time.Hour

// RecordStore is the relational side of a migration. Implemented by
// *sessionpg.Repository; the in-memory fake in the tests implements it too.
type RecordStore interface {
	Upsert(ctx context.Context, rec sessionpg.Record) error
	ForEach(ctx context.Context, fn func(sessionpg.Record) error) error
	DeleteAll(ctx context.Context) (int64, error)
}

// Summary reports the outcome of a bulk transfer. Failed counts records that
// were individually skipped because of corrupt data; a corrupt record never
// aborts the batch.
type Summary struct {
	Migrated int
	Skipped  int
	Failed   int
}

// Operator runs bulk operations over every session in the configured
// namespace.
type Operator struct {
	client        redis.UniversalClient
	ns            keyspace.Namespace
	codec         serializer.Serializer
	store         RecordStore
	log           *slog.Logger
	scanBatchSize int64
	recordTTL     time.Duration
}

// New creates an Operator. The store may be nil when only Redis-side
// operations (FlushRedis) are needed.
func New(client redis.UniversalClient, ns keyspace.Namespace, codec serializer.Serializer, store RecordStore, opts ...Option) *Operator {
	o := &Operator{
		client:        client,
		ns:            ns,
		codec:         codec,
		store:         store,
		log:           slog.Default(),
		scanBatchSize: defaultScanBatchSize,
		recordTTL:     defaultRecordTTL,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FlushRedis deletes every key in the session namespace and returns the
// number deleted. Keys outside the namespace are never touched.
func (o *Operator) FlushRedis(ctx context.Context) (int, error) {
	deleted := 0
	var cursor uint64
	for {
		keys, next, err := o.client.Scan(ctx, cursor, o.ns.Pattern(), o.scanBatchSize).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			if err := o.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, err
			}
			deleted += len(keys)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return deleted, nil
}

// MigrateToPostgres transfers every session in the namespace to the
// relational store. Payloads are validated with the serializer before
// transfer; a record that fails to decode or to upsert is counted and
// skipped, connectivity errors abort the batch.
func (o *Operator) MigrateToPostgres(ctx context.Context) (Summary, error) {
	var summary Summary
	var cursor uint64
	for {
		keys, next, err := o.client.Scan(ctx, cursor, o.ns.Pattern(), o.scanBatchSize).Result()
		if err != nil {
			return summary, err
		}

		for _, storageKey := range keys {
			payload, err := o.client.Get(ctx, storageKey).Bytes()
			if errors.Is(err, redis.Nil) {
				// Expired between scan and read.
				summary.Skipped++
				continue
			}
			if err != nil {
				return summary, err
			}

			if _, err := o.codec.Loads(payload); err != nil {
				o.log.WarnContext(ctx, "skipping undecodable session record",
					"key", storageKey, "error", err)
				summary.Failed++
				continue
			}

			ttl, err := o.client.TTL(ctx, storageKey).Result()
			if err != nil {
				return summary, err
			}
			if ttl < 0 {
				ttl = o.recordTTL
			}

			rec := sessionpg.Record{
				SessionKey:  o.ns.Remove(storageKey),
				SessionData: sessionpg.EncodeData(payload),
				ExpireDate:  time.Now().Add(ttl),
			}
			if err := o.store.Upsert(ctx, rec); err != nil {
				o.log.WarnContext(ctx, "failed to upsert session record",
					"session_key", rec.SessionKey, "error", err)
				summary.Failed++
				continue
			}
			summary.Migrated++
		}

		if next == 0 {
			break
		}
		cursor = next
	}
	return summary, nil
}

// MigrateToRedis transfers every relational session record back into Redis,
// with TTL derived from the record's expiry point. Already-expired records
// are skipped; records whose data cannot be decoded are counted as failed.
func (o *Operator) MigrateToRedis(ctx context.Context) (Summary, error) {
	var summary Summary
	err := o.store.ForEach(ctx, func(rec sessionpg.Record) error {
		if rec.Expired() {
			summary.Skipped++
			return nil
		}

		payload, err := sessionpg.DecodeData(rec.SessionData)
		if err != nil {
			o.log.WarnContext(ctx, "skipping invalid session record",
				"session_key", rec.SessionKey, "error", err)
			summary.Failed++
			return nil
		}

		if err := o.client.Set(ctx, o.ns.Add(rec.SessionKey), payload, rec.TTL()).Err(); err != nil {
			return err
		}
		summary.Migrated++
		return nil
	})
	return summary, err
}

// FlushPostgres removes every relational session record.
func (o *Operator) FlushPostgres(ctx context.Context) (int64, error) {
	return o.store.DeleteAll(ctx)
}
