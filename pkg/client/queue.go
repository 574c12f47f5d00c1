package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/coffeeshop/pkg/api"
)

// OrderCreator submits orders. HTTPClient implements it.
type OrderCreator interface {
	CreateOrder(ctx context.Context, key string, req api.CreateOrderRequest) (*api.Order, bool, error)
}

// Entry is one order waiting to be submitted.
type Entry struct {
	Key      string                 `json:"key"`
	Request  api.CreateOrderRequest `json:"request"`
	QueuedAt time.Time              `json:"queuedAt"`
}

// Rejection is an entry the server refused for good.
type Rejection struct {
	Entry Entry
	Err   *APIError
}

// FlushReport describes one Flush.
type FlushReport struct {
	Submitted []api.Order
	Rejected  []Rejection
	Remaining int
}

// OfflineQueue keeps orders in a JSON file until they reach the server. Every
// entry carries its own idempotency key, so replaying an entry that already
// reached the server does not create a second order.
type OfflineQueue struct {
	path    string
	creator OrderCreator
	logger  *slog.Logger
	now     func() time.Time
	newKey  func() string

	mu sync.Mutex
}

// NewOfflineQueue creates a queue persisted at path.
func NewOfflineQueue(path string, creator OrderCreator, logger *slog.Logger) *OfflineQueue {
	return &OfflineQueue{
		path:    path,
		creator: creator,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newKey:  uuid.NewString,
	}
}

// Enqueue stores req for later submission under a fresh key.
func (q *OfflineQueue) Enqueue(req api.CreateOrderRequest) (Entry, error) {
	return q.EnqueueWithKey(q.newKey(), req)
}

// EnqueueWithKey stores req under key. Callers that already sent req with key
// must queue it with the same key so a flush replays rather than duplicates.
func (q *OfflineQueue) EnqueueWithKey(key string, req api.CreateOrderRequest) (Entry, error) {
	if key == "" {
		return Entry{}, errors.New("queue entry needs an idempotency key")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load()
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{Key: key, Request: req, QueuedAt: q.now()}
	if err := q.save(append(entries, entry)); err != nil {
		return Entry{}, err
	}
	q.logger.Info("order queued offline", slog.String("key", entry.Key), slog.Int("drinks", len(req.OrderDrinks)))
	return entry, nil
}

// Entries returns queued entries, oldest first.
func (q *OfflineQueue) Entries() ([]Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load()
}

// Flush submits queued entries in order. Accepted entries are removed and so
// are entries rejected with a non-retryable status. The first transport
// failure or retryable status stops the flush; that entry and the rest stay
// queued and the failure is returned alongside the report.
func (q *OfflineQueue) Flush(ctx context.Context) (FlushReport, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var report FlushReport
	entries, err := q.load()
	if err != nil {
		return report, err
	}
	if len(entries) == 0 {
		return report, nil
	}

	done := 0
	var stopErr error
	for _, entry := range entries {
		order, _, err := q.creator.CreateOrder(ctx, entry.Key, entry.Request)
		if err == nil {
			report.Submitted = append(report.Submitted, *order)
			done++
			continue
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			q.logger.Warn("queued order rejected", slog.String("key", entry.Key), slog.Int("status", apiErr.StatusCode), slog.String("message", apiErr.Message))
			report.Rejected = append(report.Rejected, Rejection{Entry: entry, Err: apiErr})
			done++
			continue
		}

		stopErr = fmt.Errorf("submit queued order %s: %w", entry.Key, err)
		break
	}

	rest := entries[done:]
	report.Remaining = len(rest)
	if done > 0 {
		if err := q.save(rest); err != nil {
			return report, err
		}
	}

	q.logger.Info("offline queue flushed",
		slog.Int("submitted", len(report.Submitted)),
		slog.Int("rejected", len(report.Rejected)),
		slog.Int("remaining", report.Remaining),
	)
	return report, stopErr
}

// Run flushes the queue every interval until ctx is done.
func (q *OfflineQueue) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := q.Flush(ctx); err != nil && ctx.Err() == nil {
				q.logger.Warn("offline queue flush stopped", slog.Any("error", err))
			}
		}
	}
}

func (q *OfflineQueue) load() ([]Entry, error) {
	data, err := os.ReadFile(q.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read offline queue: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode offline queue %s: %w", q.path, err)
	}
	return entries, nil
}

// save replaces the queue file through a rename so readers never see a
// partial write.
func (q *OfflineQueue) save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode offline queue: %w", err)
	}

	dir := filepath.Dir(q.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create queue dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".queue-*")
	if err != nil {
		return fmt.Errorf("create queue file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write offline queue: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write offline queue: %w", err)
	}
	if err := os.Rename(tmp.Name(), q.path); err != nil {
		return fmt.Errorf("replace offline queue: %w", err)
	}
	return nil
}
