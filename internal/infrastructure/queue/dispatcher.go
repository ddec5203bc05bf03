package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// ErrDispatcherClosed is returned by Insert once Close has begun.
var ErrDispatcherClosed = errors.New("audit dispatcher closed")

// AuditDispatcher moves audit writes off the request path. Entries are
// sharded on the target account so the trail of one account stays in order.
// It satisfies ports.AuditRepository and forwards every entry to sink.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	sink    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu guards closed and the worker channels against a send after close.
	mu        sync.RWMutex
	closed    bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, sink ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		sink:    sink,
		log:     log,
		done:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. They run until Close.
func (d *AuditDispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Close stops accepting entries and waits until every queued entry is written.
// Inserts blocked on a full buffer are released with ErrDispatcherClosed.
// Calling Close more than once is safe.
func (d *AuditDispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)

		d.mu.Lock()
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
		d.mu.Unlock()
	})
	d.wg.Wait()
}

// Insert queues entry for the worker that owns its target. It blocks only
// while that worker's buffer is full, and gives up when ctx ends or the
// dispatcher closes.
func (d *AuditDispatcher) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.workers[d.shardIndex(entry.TargetID)] <- *entry:
		return nil
	case <-d.done:
		return ErrDispatcherClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a target id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(targetID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(targetID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	for entry := range ch {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.sink.Insert(ctx, &entry); err != nil {
			d.log.Error().Err(err).
				Str("action", entry.Action).
				Str("target_id", entry.TargetID).
				Int("worker_id", id).
				Msg("audit write failed")
		}
		cancel()
	}
}
