package storage

import (
	"log/slog"
	"sync"

	"github.com/qepting91/hotfavs/internal/metrics"
)

// WriterService serializes slot writes on a single goroutine. Every value is a
// full overwrite, so the last one written wins.
type WriterService struct {
	Slot   Slot
	Logger *slog.Logger

	mu     sync.Mutex
	closed bool
	input  chan []string
}

func NewWriter(slot Slot, logger *slog.Logger) *WriterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WriterService{Slot: slot, Logger: logger, input: make(chan []string, 32)}
}

// Start drains queued writes until Close is called.
func (w *WriterService) Start(wg *sync.WaitGroup) {
	defer wg.Done()

	for ids := range w.input {
		if err := w.Slot.Save(EncodeIDs(ids)); err != nil {
			metrics.SlotWriteErrors.Inc()
			w.Logger.Error("Favorites write failed", "ids", len(ids), "err", err)
			continue
		}
		metrics.Favorites.Set(float64(len(ids)))
	}
}

// Persist queues a full snapshot of ids. It does not wait for the write.
func (w *WriterService) Persist(ids []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.Logger.Warn("Favorites write after close dropped", "ids", len(ids))
		return
	}
	w.input <- append([]string(nil), ids...)
}

// Close stops accepting writes; Start returns once the queue is drained.
func (w *WriterService) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.input)
	}
}
