// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemoment/internal/config"
	"github.com/tomtom215/cinemoment/internal/models"
)

func testEnrichConfig() config.EnrichConfig {
	return config.EnrichConfig{
		ImageBaseURL:   "https://images.example.com/w500",
		CacheTTL:       time.Hour,
		PerItemTimeout: time.Second,
		Concurrency:    8,
		RatePerSecond:  100,
		RateBurst:      20,
	}
}

// fakeCatalog serves canned metadata and tracks concurrency.
type fakeCatalog struct {
	mu       sync.Mutex
	calls    int
	inflight int32
	peak     int32
	fail     map[string]bool
	delay    time.Duration
}

func (f *fakeCatalog) Item(ctx context.Context, _ models.Domain, id string) (Metadata, error) {
	cur := atomic.AddInt32(&f.inflight, 1)
	defer atomic.AddInt32(&f.inflight, -1)
	for {
		peak := atomic.LoadInt32(&f.peak)
		if cur <= peak || atomic.CompareAndSwapInt32(&f.peak, peak, cur) {
			break
		}
	}

	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return Metadata{}, ctx.Err()
		}
	}
	if f.fail[id] {
		return Metadata{}, errors.New("catalog error")
	}
	return Metadata{
		PosterPath:   "/" + id + ".jpg",
		Overview:     "About " + id,
		Cast:         []string{"Lead Actor"},
		Providers:    []string{"StreamCo"},
		BackdropPath: "/" + id + "-backdrop.jpg",
	}, nil
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func candidates(n int) []models.Candidate {
	out := make([]models.Candidate, n)
	for i := range out {
		out[i] = models.Candidate{
			ID:    fmt.Sprintf("mv-%d", i),
			Title: fmt.Sprintf("Title %d", i),
		}
	}
	return out
}

func TestEnrichPreservesOrderAndHydrates(t *testing.T) {
	catalog := &fakeCatalog{}
	e := NewEnricher(catalog, testEnrichConfig(), zerolog.Nop())
	defer e.Close()

	in := candidates(5)
	items := e.Enrich(context.Background(), in)

	if len(items) != len(in) {
		t.Fatalf("got %d items, want %d", len(items), len(in))
	}
	for i, item := range items {
		if item.ID != in[i].ID {
			t.Errorf("order broken at %d: got %s want %s", i, item.ID, in[i].ID)
		}
		wantPoster := "https://images.example.com/w500/" + in[i].ID + ".jpg"
		if item.PosterURL != wantPoster {
			t.Errorf("poster URL = %q, want %q", item.PosterURL, wantPoster)
		}
		if item.Synopsis != "About "+in[i].ID {
			t.Errorf("synopsis = %q", item.Synopsis)
		}
		if len(item.StreamingOn) != 1 || item.StreamingOn[0] != "StreamCo" {
			t.Errorf("streaming = %v", item.StreamingOn)
		}
	}
}

func TestEnrichBoundedConcurrency(t *testing.T) {
	catalog := &fakeCatalog{delay: 20 * time.Millisecond}
	e := NewEnricher(catalog, testEnrichConfig(), zerolog.Nop())
	defer e.Close()

	e.Enrich(context.Background(), candidates(30))

	if peak := atomic.LoadInt32(&catalog.peak); peak > 8 {
		t.Errorf("peak concurrency = %d, want <= 8", peak)
	}
}

func TestEnrichFailureKeepsItem(t *testing.T) {
	catalog := &fakeCatalog{fail: map[string]bool{"mv-1": true}}
	e := NewEnricher(catalog, testEnrichConfig(), zerolog.Nop())
	defer e.Close()

	in := []models.Candidate{
		{ID: "mv-0", Title: "Fine", Overview: "retrieval overview"},
		{ID: "mv-1", Title: "Broken", Overview: "carried overview", PosterPath: "/carried.jpg"},
	}
	items := e.Enrich(context.Background(), in)

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (failures must not drop items)", len(items))
	}
	broken := items[1]
	if broken.Title != "Broken" {
		t.Fatalf("order broken: %+v", broken)
	}
	if broken.Synopsis != "carried overview" {
		t.Errorf("synopsis = %q, want the retrieval overview", broken.Synopsis)
	}
	if broken.PosterURL != "https://images.example.com/w500/carried.jpg" {
		t.Errorf("poster URL = %q, want the carried path", broken.PosterURL)
	}
}

func TestEnrichAllFailuresStillReturnsItems(t *testing.T) {
	catalog := &fakeCatalog{fail: map[string]bool{"mv-0": true, "mv-1": true, "mv-2": true}}
	e := NewEnricher(catalog, testEnrichConfig(), zerolog.Nop())
	defer e.Close()

	items := e.Enrich(context.Background(), candidates(3))
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for _, item := range items {
		if item.Synopsis != "Synopsis unavailable" {
			t.Errorf("item %s synopsis = %q, want sentinel", item.ID, item.Synopsis)
		}
	}
}

func TestEnrichUsesPerItemCache(t *testing.T) {
	catalog := &fakeCatalog{}
	e := NewEnricher(catalog, testEnrichConfig(), zerolog.Nop())
	defer e.Close()

	in := candidates(4)
	e.Enrich(context.Background(), in)
	e.Enrich(context.Background(), in)

	if got := catalog.callCount(); got != 4 {
		t.Errorf("catalog called %d times, want 4 (second pass from cache)", got)
	}
}

func TestEnrichNilClientUsesRetrievalFields(t *testing.T) {
	e := NewEnricher(nil, testEnrichConfig(), zerolog.Nop())
	defer e.Close()

	items := e.Enrich(context.Background(), []models.Candidate{
		{ID: "mv-9", Title: "Offline", Overview: "from retrieval", PosterPath: "/p.jpg"},
	})
	if items[0].Synopsis != "from retrieval" {
		t.Errorf("synopsis = %q", items[0].Synopsis)
	}
	if items[0].PosterURL != "https://images.example.com/w500/p.jpg" {
		t.Errorf("poster URL = %q", items[0].PosterURL)
	}
}

func TestHTTPCatalogItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/items/movies/mv-42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"poster_path":"/x.jpg","overview":"a story","cast":["A","B"],"watch_providers":["S"]}`))
	}))
	defer srv.Close()

	cfg := testEnrichConfig()
	cfg.CatalogURL = srv.URL
	client := NewHTTPCatalog(cfg)

	meta, err := client.Item(context.Background(), models.DomainMovies, "mv-42")
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if meta.PosterPath != "/x.jpg" || len(meta.Cast) != 2 {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestHTTPCatalogItemErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testEnrichConfig()
	cfg.CatalogURL = srv.URL
	client := NewHTTPCatalog(cfg)

	if _, err := client.Item(context.Background(), models.DomainMovies, "mv-404"); err == nil {
		t.Fatal("expected error for 404")
	}
}
