// Package idempotency remembers which order an Idempotency-Key produced so a
// retried create returns the original order instead of a duplicate.
package idempotency

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
)

// HeaderKey is the request header carrying the client generated key.
const HeaderKey = "Idempotency-Key"

// MaxKeyLength bounds accepted keys.
const MaxKeyLength = 255

type record struct {
	orderID     string
	fingerprint string
	expiresAt   time.Time
}

// Store maps keys to order ids for a limited time.
type Store struct {
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	records map[string]record
	group   singleflight.Group
}

// NewStore creates an empty store whose records live for ttl.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		records: make(map[string]record),
	}
}

// ValidateKey rejects keys the store refuses to remember.
func ValidateKey(key string) error {
	if len(key) > MaxKeyLength {
		return domainErrors.NewValidationError(HeaderKey, "must be at most 255 characters")
	}
	return nil
}

// Do returns the order id remembered for key, or runs create and remembers its
// result together with fingerprint. Concurrent calls with the same key share
// one create. replayed is false only for the caller whose create produced the
// order. A key seen with a different fingerprint yields ErrKeyReused.
func (s *Store) Do(ctx context.Context, key, fingerprint string, create func(context.Context) (string, error)) (orderID string, replayed bool, err error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}

	if rec, ok := s.lookup(key); ok {
		return s.replay(key, rec, fingerprint)
	}

	executed := false
	v, err, _ := s.group.Do(key, func() (any, error) {
		if rec, ok := s.lookup(key); ok {
			return rec, nil
		}
		executed = true
		id, err := create(ctx)
		if err != nil {
			return record{}, err
		}
		return s.remember(key, id, fingerprint), nil
	})
	if err != nil {
		return "", false, err
	}
	if executed {
		return v.(record).orderID, false, nil
	}
	return s.replay(key, v.(record), fingerprint)
}

func (s *Store) replay(key string, rec record, fingerprint string) (string, bool, error) {
	if rec.fingerprint != fingerprint {
		s.logger.Warn("idempotency key reused with a different request", slog.String("key", key), slog.String("order_id", rec.orderID))
		return "", false, domainErrors.ErrKeyReused
	}
	return rec.orderID, true, nil
}

// Lookup reports the order id remembered for key, if any.
func (s *Store) Lookup(key string) (string, bool) {
	rec, ok := s.lookup(key)
	return rec.orderID, ok
}

// Sweep evicts expired records and returns how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, rec := range s.records {
		if !now.Before(rec.expiresAt) {
			delete(s.records, key)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("idempotency keys evicted", slog.Int("count", removed), slog.Int("remaining", len(s.records)))
	}
	return removed
}

// Len returns the number of remembered keys, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) lookup(key string) (record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok || !s.now().Before(rec.expiresAt) {
		return record{}, false
	}
	return rec, true
}

func (s *Store) remember(key, orderID, fingerprint string) record {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := record{orderID: orderID, fingerprint: fingerprint, expiresAt: s.now().Add(s.ttl)}
	s.records[key] = rec
	return rec
}
