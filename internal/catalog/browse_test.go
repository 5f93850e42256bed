package catalog

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestBrowseInitialWindow(t *testing.T) {
	b := NewBrowse(makeProducts(12), 5, 0)
	snap := b.Snapshot()
	if snap.Page != 1 {
		t.Fatalf("expected page 1, got %d", snap.Page)
	}
	if len(snap.Displayed) != 5 {
		t.Fatalf("expected first page of 5, got %d", len(snap.Displayed))
	}
	if !snap.HasMore {
		t.Fatal("expected more pages for 12 products")
	}
	if snap.Filtered != 12 {
		t.Fatalf("expected all 12 products filtered, got %d", snap.Filtered)
	}
}

func TestBrowseLoadMoreWalkthrough(t *testing.T) {
	// 12 matching products, page size 5: 5 -> 10 -> 12 -> no change
	b := NewBrowse(makeProducts(12), 5, 0)
	ctx := context.Background()

	snap := b.SetFilters(Update{})
	if len(snap.Displayed) != 5 || !snap.HasMore || snap.Page != 1 {
		t.Fatalf("after setFilters: %d displayed, page %d, hasMore %v", len(snap.Displayed), snap.Page, snap.HasMore)
	}

	snap, extended := b.LoadMore(ctx)
	if !extended || len(snap.Displayed) != 10 || !snap.HasMore {
		t.Fatalf("first loadMore: extended=%v displayed=%d hasMore=%v", extended, len(snap.Displayed), snap.HasMore)
	}

	snap, extended = b.LoadMore(ctx)
	if !extended || len(snap.Displayed) != 12 || snap.HasMore {
		t.Fatalf("second loadMore: extended=%v displayed=%d hasMore=%v", extended, len(snap.Displayed), snap.HasMore)
	}

	snap, extended = b.LoadMore(ctx)
	if extended || len(snap.Displayed) != 12 || snap.Page != 3 {
		t.Fatalf("third loadMore must be a no-op: extended=%v displayed=%d page=%d", extended, len(snap.Displayed), snap.Page)
	}
}

func TestBrowseExactMultipleBoundary(t *testing.T) {
	b := NewBrowse(makeProducts(10), 5, 0)
	ctx := context.Background()

	snap, extended := b.LoadMore(ctx)
	if !extended || len(snap.Displayed) != 10 {
		t.Fatalf("expected full second page, got %d", len(snap.Displayed))
	}
	if snap.HasMore {
		t.Fatal("hasMore must flip off once displayed covers the filtered subset")
	}
	if snap, extended = b.LoadMore(ctx); extended || len(snap.Displayed) != 10 {
		t.Fatalf("boundary loadMore must not append, got %d", len(snap.Displayed))
	}
}

func TestBrowseSetFiltersResetsWindow(t *testing.T) {
	b := NewBrowse(makeProducts(12), 5, 0)
	ctx := context.Background()
	if _, extended := b.LoadMore(ctx); !extended {
		t.Fatal("sanity: loadMore should extend")
	}

	snap := b.SetFilters(Update{Search: ptr("Plant 1")})
	if snap.Page != 1 {
		t.Fatalf("setFilters must reset to page 1, got %d", snap.Page)
	}
	want := snap.Filtered
	if want < snap.PageSize {
		if len(snap.Displayed) != want {
			t.Fatalf("displayed should equal filtered count %d, got %d", want, len(snap.Displayed))
		}
	} else if len(snap.Displayed) != snap.PageSize {
		t.Fatalf("displayed should equal page size, got %d", len(snap.Displayed))
	}
}

func TestBrowseFilterThenEmptyResult(t *testing.T) {
	b := NewBrowse(makeProducts(12), 5, 0)
	snap := b.SetFilters(Update{Search: ptr("no such plant anywhere")})
	if len(snap.Displayed) != 0 || snap.HasMore {
		t.Fatalf("empty result should have empty window, got %d hasMore=%v", len(snap.Displayed), snap.HasMore)
	}
	if snap, extended := b.LoadMore(context.Background()); extended || len(snap.Displayed) != 0 {
		t.Fatal("loadMore on empty result must be a no-op")
	}
}

func TestBrowseLoadMoreReentrancyGuard(t *testing.T) {
	b := NewBrowse(makeProducts(30), 5, 30*time.Millisecond)
	ctx := context.Background()

	var wg sync.WaitGroup
	extensions := make([]bool, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, extensions[slot] = b.LoadMore(ctx)
		}(i)
	}
	wg.Wait()

	committed := 0
	for _, ok := range extensions {
		if ok {
			committed++
		}
	}
	if committed != 1 {
		t.Fatalf("rapid double-fire should commit exactly one page, got %d", committed)
	}
	if snap := b.Snapshot(); len(snap.Displayed) != 10 {
		t.Fatalf("expected one extension to 10, got %d", len(snap.Displayed))
	}
}

func TestBrowseFilterChangeAbandonsInflightLoad(t *testing.T) {
	b := NewBrowse(makeProducts(30), 5, 50*time.Millisecond)
	ctx := context.Background()

	done := make(chan bool, 1)
	go func() {
		_, extended := b.LoadMore(ctx)
		done <- extended
	}()

	time.Sleep(10 * time.Millisecond)
	b.SetFilters(Update{Search: ptr("Plant 2")})

	if extended := <-done; extended {
		t.Fatal("in-flight load must yield to a filter reset")
	}
	if snap := b.Snapshot(); snap.Page != 1 {
		t.Fatalf("filter reset should leave page 1, got %d", snap.Page)
	}
}

func TestBrowseLoadMoreHonorsCancellation(t *testing.T) {
	b := NewBrowse(makeProducts(30), 5, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, extended := b.LoadMore(ctx)
	if extended {
		t.Fatal("cancelled loadMore must not commit")
	}
	if len(snap.Displayed) != 5 {
		t.Fatalf("window must be unchanged, got %d", len(snap.Displayed))
	}

	// the guard must be released for the next call
	if _, extended := b.LoadMore(context.Background()); !extended {
		t.Fatal("subsequent loadMore should work")
	}
}
