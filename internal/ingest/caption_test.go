package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeCaptioner struct {
	mu       sync.Mutex
	failFor  map[string]error
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (f *fakeCaptioner) Caption(ctx context.Context, imagePath string) (string, error) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if current <= peak || f.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	err := f.failFor[imagePath]
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return "caption of " + imagePath, nil
}

func makePages(n int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = Page{Page: i + 1, ImagePath: fmt.Sprintf("p%d.png", i+1)}
	}
	return pages
}

func TestCaptionAllIsolatesFailures(t *testing.T) {
	captioner := &fakeCaptioner{failFor: map[string]error{
		"p2.png": errors.New("model choked"),
	}}

	results := CaptionAll(context.Background(), captioner, makePages(3), 2)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Page.Page != i+1 {
			t.Fatalf("expected results sorted by page, got %+v", results)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("expected pages 1 and 3 to succeed: %+v", results)
	}
	if results[1].Err == nil {
		t.Fatalf("expected page 2 to fail")
	}

	failed := FailedPages(results)
	if len(failed) != 1 || failed[0] != 2 {
		t.Fatalf("expected failed pages [2], got %v", failed)
	}
}

func TestCaptionAllBoundsConcurrency(t *testing.T) {
	captioner := &fakeCaptioner{delay: 20 * time.Millisecond}

	results := CaptionAll(context.Background(), captioner, makePages(8), 2)

	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}
	if peak := captioner.peak.Load(); peak > 2 {
		t.Fatalf("expected at most 2 concurrent captions, saw %d", peak)
	}
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		if res.Caption == "" {
			t.Fatalf("expected caption for page %d", res.Page.Page)
		}
	}
}

func TestFailedPagesEmptyOnSuccess(t *testing.T) {
	captioner := &fakeCaptioner{}

	results := CaptionAll(context.Background(), captioner, makePages(2), 0)
	if failed := FailedPages(results); len(failed) != 0 {
		t.Fatalf("expected no failed pages, got %v", failed)
	}
}
