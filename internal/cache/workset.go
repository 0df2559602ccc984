package cache

import (
	"context"
	"sync"
	"time"

	"github.com/andresuchdata/paywatch/internal/domain"
)

// RecordReader is the slice of the record store the workset needs.
type RecordReader interface {
	ReadAll(ctx context.Context) []domain.PaymentRecord
}

// Workset is a caller-owned in-memory snapshot of the record store. It is
// the explicit replacement for the legacy session-state dataset: consumers
// hold one, pass it around as a dependency, and call Refresh after every
// write instead of re-reading the store ad hoc.
type Workset struct {
	mu          sync.RWMutex
	reader      RecordReader
	records     []domain.PaymentRecord
	refreshedAt time.Time
}

func NewWorkset(reader RecordReader) *Workset {
	return &Workset{reader: reader}
}

// Refresh replaces the snapshot with the store's current contents.
func (w *Workset) Refresh(ctx context.Context) {
	records := w.reader.ReadAll(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = records
	w.refreshedAt = time.Now()
}

// Records returns a copy of the snapshot; mutating it does not affect the
// workset.
func (w *Workset) Records() []domain.PaymentRecord {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]domain.PaymentRecord, len(w.records))
	copy(out, w.records)
	return out
}

// Len returns the snapshot size.
func (w *Workset) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.records)
}

// RefreshedAt returns when the snapshot was last refreshed; zero when it
// never was.
func (w *Workset) RefreshedAt() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.refreshedAt
}
