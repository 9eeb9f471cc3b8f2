// Package persistence contains the write-behind queue that carries
// in-memory collection snapshots to the blob store.
package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/iho/finbook/internal/usecase"
)

var (
	savesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finbook_collection_saves_total",
			Help: "Collection saves applied to the blob store",
		},
		[]string{"key", "status"},
	)

	saveRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finbook_collection_save_retries_total",
			Help: "Retried collection saves after transient store errors",
		},
		[]string{"key"},
	)

	pendingSaves = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "finbook_collection_saves_pending",
			Help: "Collection saves waiting in the write-behind queue",
		},
	)
)

// Writer applies collection saves asynchronously, strictly in enqueue order
// per key. A save that is superseded before it is applied is coalesced away:
// only the newest payload for a key reaches the store. Mutating callers
// never block on the store; the in-memory collection stays the source of
// truth for the session.
type Writer struct {
	store      usecase.BlobStore
	logger     zerolog.Logger
	onError    func(key string, err error)
	maxElapsed time.Duration
	drainGrace time.Duration

	signal chan struct{}

	mu      sync.Mutex
	queue   []string
	pending map[string][]byte
}

// Config for Writer.
type Config struct {
	Store   usecase.BlobStore
	Logger  zerolog.Logger
	OnError func(key string, err error) // invoked after retries are exhausted
	// MaxElapsedTime bounds the retry window per save.
	MaxElapsedTime time.Duration
	// DrainGrace bounds the final flush on shutdown.
	DrainGrace time.Duration
}

// NewWriter creates a new Writer.
func NewWriter(cfg Config) *Writer {
	if cfg.MaxElapsedTime == 0 {
		cfg.MaxElapsedTime = 10 * time.Second
	}
	if cfg.DrainGrace == 0 {
		cfg.DrainGrace = 5 * time.Second
	}
	return &Writer{
		store:      cfg.Store,
		logger:     cfg.Logger,
		onError:    cfg.OnError,
		maxElapsed: cfg.MaxElapsedTime,
		drainGrace: cfg.DrainGrace,
		signal:     make(chan struct{}, 1),
		pending:    make(map[string][]byte),
	}
}

// Save enqueues a snapshot for the key. If a save for the same key is
// already queued its payload is replaced in place, keeping the key's
// original queue position.
func (w *Writer) Save(key string, data []byte) {
	w.mu.Lock()
	if _, queued := w.pending[key]; !queued {
		w.queue = append(w.queue, key)
		pendingSaves.Inc()
	}
	w.pending[key] = data
	w.mu.Unlock()

	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// Start runs the writer until the context is cancelled, then drains any
// queued saves within the drain grace period.
func (w *Writer) Start(ctx context.Context) error {
	w.logger.Info().Msg("persistence writer started")

	for {
		select {
		case <-ctx.Done():
			w.drain()
			w.logger.Info().Msg("persistence writer stopped")
			return ctx.Err()
		case <-w.signal:
			w.flush(ctx)
		}
	}
}

// flush applies every queued save in order.
func (w *Writer) flush(ctx context.Context) {
	for {
		key, data, ok := w.next()
		if !ok {
			return
		}
		w.apply(ctx, key, data)
	}
}

// next pops the oldest queued save.
func (w *Writer) next() (string, []byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.queue) == 0 {
		return "", nil, false
	}
	key := w.queue[0]
	w.queue = w.queue[1:]
	data := w.pending[key]
	delete(w.pending, key)
	pendingSaves.Dec()
	return key, data, true
}

// apply writes one snapshot, retrying transient failures with exponential
// backoff. A save that still fails after the retry window is reported and
// dropped; the next mutation enqueues a fresh snapshot anyway.
func (w *Writer) apply(ctx context.Context, key string, data []byte) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 1 * time.Second
	b.MaxElapsedTime = w.maxElapsed

	attempt := 0
	err := backoff.Retry(func() error {
		if attempt > 0 {
			saveRetriesTotal.WithLabelValues(key).Inc()
			w.logger.Warn().
				Str("key", key).
				Int("attempt", attempt).
				Msg("retrying collection save")
		}
		attempt++
		return w.store.Save(ctx, key, data)
	}, backoff.WithContext(b, ctx))

	if err != nil {
		savesTotal.WithLabelValues(key, "error").Inc()
		w.logger.Error().
			Err(err).
			Str("key", key).
			Msg("collection save failed")
		if w.onError != nil {
			w.onError(key, err)
		}
		return
	}

	savesTotal.WithLabelValues(key, "ok").Inc()
	w.logger.Debug().
		Str("key", key).
		Int("bytes", len(data)).
		Msg("collection saved")
}

// drain flushes the remaining queue with a bounded fresh context.
func (w *Writer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), w.drainGrace)
	defer cancel()
	w.flush(ctx)
}
