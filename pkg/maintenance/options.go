package maintenance

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring an Operator.
type Option func(*Operator)

// WithLogger sets the logger used to report per-record failures.
func WithLogger(log *slog.Logger) Option {
	return func(o *Operator) {
		o.log = log
	}
}

// WithScanBatchSize overrides the SCAN page size.
func WithScanBatchSize(n int64) Option {
	return func(o *Operator) {
		o.scanBatchSize = n
	}
}

// WithRecordTTL sets the lifetime assigned to sessions that carry no TTL in
// Redis when they are transferred to the relational store.
func WithRecordTTL(d time.Duration) Option {
	return func(o *Operator) {
		o.recordTTL = d
	}
}
