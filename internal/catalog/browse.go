package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/mossxapp/mossx-backend/pkg/dataset"
)

// Browse holds one user's catalog view: the active filters and the page
// window into the filtered subset. Displayed and HasMore are derived from
// the canonical filtered slice, never patched incrementally.
type Browse struct {
	mu       sync.Mutex
	products []dataset.Product

	criteria  Criteria
	filtered  []*dataset.Product
	page      int
	pageSize  int
	delay     time.Duration
	pending   bool
	gen       uint64
}

// Snapshot is an immutable view of the browse state for rendering.
type Snapshot struct {
	Displayed []*dataset.Product
	Page      int
	PageSize  int
	HasMore   bool
	Filtered  int
	Criteria  Criteria
}

// NewBrowse starts a browse session showing the first page of the full
// catalog, mirroring the storefront's initial listing.
func NewBrowse(products []dataset.Product, pageSize int, delay time.Duration) *Browse {
	if pageSize <= 0 {
		pageSize = 5
	}
	b := &Browse{
		products: products,
		pageSize: pageSize,
		delay:    delay,
	}
	b.filtered = Filter(products, Criteria{})
	b.page = 1
	return b
}

// Snapshot returns the current window.
func (b *Browse) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Browse) snapshotLocked() Snapshot {
	displayed := b.displayedLocked()
	return Snapshot{
		Displayed: displayed,
		Page:      b.page,
		PageSize:  b.pageSize,
		HasMore:   len(b.filtered) > len(displayed),
		Filtered:  len(b.filtered),
		Criteria:  b.criteria,
	}
}

func (b *Browse) displayedLocked() []*dataset.Product {
	end := b.page * b.pageSize
	if end > len(b.filtered) {
		end = len(b.filtered)
	}
	out := make([]*dataset.Product, end)
	copy(out, b.filtered[:end])
	return out
}

// SetFilters merges the partial update into the active criteria, resets the
// window to page one and recomputes the filtered subset.
func (b *Browse) SetFilters(update Update) Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.criteria = b.criteria.Merge(update)
	b.filtered = Filter(b.products, b.criteria)
	b.page = 1
	b.gen++
	b.pending = false
	return b.snapshotLocked()
}

// LoadMore extends the window by one page. It is a no-op when there is
// nothing left, and ignores calls that race an in-flight load (rapid scroll
// double-fire). The optional delay simulates the fetch the mobile app
// performs; the commit itself is synchronous.
func (b *Browse) LoadMore(ctx context.Context) (Snapshot, bool) {
	b.mu.Lock()
	snap := b.snapshotLocked()
	if !snap.HasMore || b.pending {
		b.mu.Unlock()
		return snap, false
	}
	b.pending = true
	gen := b.gen
	delay := b.delay
	b.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			if b.gen == gen {
				b.pending = false
			}
			snap = b.snapshotLocked()
			b.mu.Unlock()
			return snap, false
		case <-time.After(delay):
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gen != gen {
		// filters changed while the load was in flight; the reset wins
		return b.snapshotLocked(), false
	}
	b.pending = false

	start := b.page * b.pageSize
	if start >= len(b.filtered) {
		// exact-multiple boundary: nothing to append
		return b.snapshotLocked(), false
	}
	b.page++
	return b.snapshotLocked(), true
}
