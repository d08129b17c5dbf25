package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/authshell/authshell/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrStopped is returned by Submit once Stop has been called.
var ErrStopped = errors.New("writer stopped")

type job struct {
	ctx  context.Context
	key  string
	fn   func(ctx context.Context) error
	done chan error
}

// Writer serialises writes per storage key. Jobs are routed to a fixed set of
// workers by hashing the key, so every job for one key runs on the same
// goroutine in submission order.
type Writer struct {
	workers []chan job
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// NewWriter creates a Writer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewWriter(numWorkers int, log zerolog.Logger) *Writer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &Writer{
		workers: make([]chan job, numWorkers),
		log:     log,
		quit:    make(chan struct{}),
	}
	for i := range w.workers {
		w.workers[i] = make(chan job, channelBuffer)
	}
	return w
}

// Start launches all worker goroutines. Cancelling ctx has the same effect
// as Stop.
func (w *Writer) Start(ctx context.Context) {
	for i, ch := range w.workers {
		w.wg.Add(1)
		go w.runWorker(i, ch)
	}
	go func() {
		select {
		case <-ctx.Done():
			w.Stop()
		case <-w.quit:
		}
	}()
}

// Stop rejects new jobs, lets queued ones drain and waits for the workers.
func (w *Writer) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.quit)
	for _, ch := range w.workers {
		close(ch)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

// Submit runs fn on the worker owning key and waits for its result.
// A job whose ctx is done before it is dequeued is skipped. Once fn has
// started it runs to completion and Submit reports its result, even if ctx
// is cancelled meanwhile.
func (w *Writer) Submit(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	j := job{ctx: ctx, key: key, fn: fn, done: make(chan error, 1)}
	idx := w.shardIndex(key)

	w.mu.RLock()
	if w.stopped {
		w.mu.RUnlock()
		return ErrStopped
	}
	select {
	case w.workers[idx] <- j:
		metrics.WriterQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(w.workers[idx])))
	case <-ctx.Done():
		w.mu.RUnlock()
		return ctx.Err()
	}
	w.mu.RUnlock()

	return <-j.done
}

// shardIndex maps a key deterministically to a worker index.
func (w *Writer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(w.workers)))
}

func (w *Writer) runWorker(id int, ch <-chan job) {
	defer w.wg.Done()
	for j := range ch {
		metrics.WriterQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		if err := j.ctx.Err(); err != nil {
			j.done <- err
			continue
		}
		err := j.fn(context.WithoutCancel(j.ctx))
		if err != nil {
			w.log.Warn().Err(err).
				Str("key", j.key).
				Int("worker_id", id).
				Msg("write job failed")
		}
		j.done <- err
	}
}
