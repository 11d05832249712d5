package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/minsu-kang/steamrec/adapters/clock"
	"github.com/minsu-kang/steamrec/adapters/memory"
	"github.com/minsu-kang/steamrec/app"
	"github.com/minsu-kang/steamrec/domain/game"
)

var samplerEpoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newSampler(finder *fakeFinder) (*app.Sampler, *memory.ExpiryStore, *clock.Fake, *recordingMetrics) {
	fc := clock.NewFake(samplerEpoch)
	ledger := memory.NewExpiryStore(fc)
	m := &recordingMetrics{}
	return app.NewSampler(finder, ledger, m, zerolog.Nop()), ledger, fc, m
}

func TestSampler_PickCommitsOnce(t *testing.T) {
	finder := &fakeFinder{results: []game.Candidate{{AppID: 440, Name: "Team Fortress 2"}}}
	s, ledger, _, m := newSampler(finder)

	got, err := s.Pick(context.Background(), game.Query{Tags: []string{"FPS"}})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got.AppID != 440 {
		t.Errorf("AppID = %d, want 440", got.AppID)
	}
	if finder.calls != 1 {
		t.Errorf("finder calls = %d, want 1", finder.calls)
	}

	seen, _ := ledger.Has(context.Background(), "rec:440")
	if !seen {
		t.Error("expected 440 marked in the ledger")
	}
	if len(m.attempts) != 1 || m.attempts[0] != 1 {
		t.Errorf("recorded attempts = %v, want [1]", m.attempts)
	}
}

func TestSampler_EmptyCatalogFailsFast(t *testing.T) {
	finder := &fakeFinder{}
	s, _, _, _ := newSampler(finder)

	_, err := s.Pick(context.Background(), game.Query{Tags: []string{"없는태그"}})
	if !errors.Is(err, app.ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
	// Structural absence: retrying cannot change the outcome.
	if finder.calls != 1 {
		t.Errorf("finder calls = %d, want 1", finder.calls)
	}
}

func TestSampler_AllDuplicatesExhaustsAttempts(t *testing.T) {
	finder := &fakeFinder{results: []game.Candidate{{AppID: 570, Name: "Dota 2"}}}
	s, ledger, _, _ := newSampler(finder)

	if err := ledger.SetWithTTL(context.Background(), "rec:570", []byte{1}, time.Hour); err != nil {
		t.Fatal(err)
	}

	_, err := s.Pick(context.Background(), game.Query{})
	if !errors.Is(err, app.ErrAllRecentlyRecommended) {
		t.Fatalf("err = %v, want ErrAllRecentlyRecommended", err)
	}
	if finder.calls != 5 {
		t.Errorf("finder calls = %d, want exactly 5", finder.calls)
	}
}

func TestSampler_SkipsDuplicateThenAccepts(t *testing.T) {
	finder := &fakeFinder{results: []game.Candidate{
		{AppID: 570},
		{AppID: 730},
	}}
	s, ledger, _, m := newSampler(finder)

	if err := ledger.SetWithTTL(context.Background(), "rec:570", []byte{1}, time.Hour); err != nil {
		t.Fatal(err)
	}

	got, err := s.Pick(context.Background(), game.Query{})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if got.AppID != 730 {
		t.Errorf("AppID = %d, want 730", got.AppID)
	}
	if len(m.attempts) != 1 || m.attempts[0] != 2 {
		t.Errorf("recorded attempts = %v, want [2]", m.attempts)
	}
}

func TestSampler_MarkExpiresAfterWindow(t *testing.T) {
	finder := &fakeFinder{results: []game.Candidate{{AppID: 620}}}
	s, _, fc, _ := newSampler(finder)

	if _, err := s.Pick(context.Background(), game.Query{}); err != nil {
		t.Fatalf("first Pick: %v", err)
	}

	// Within the window the same candidate is a duplicate.
	finder.results = []game.Candidate{{AppID: 620}}
	if _, err := s.Pick(context.Background(), game.Query{}); !errors.Is(err, app.ErrAllRecentlyRecommended) {
		t.Fatalf("within window: err = %v, want ErrAllRecentlyRecommended", err)
	}

	fc.Advance(31 * time.Minute)
	finder.results = []game.Candidate{{AppID: 620}}
	if _, err := s.Pick(context.Background(), game.Query{}); err != nil {
		t.Fatalf("after expiry: %v", err)
	}
}

func TestSampler_CancelledContextAborts(t *testing.T) {
	finder := &fakeFinder{results: []game.Candidate{{AppID: 10}}}
	s, ledger, _, _ := newSampler(finder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Pick(ctx, game.Query{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if finder.calls != 0 {
		t.Errorf("finder calls = %d, want 0", finder.calls)
	}
	if seen, _ := ledger.Has(context.Background(), "rec:10"); seen {
		t.Error("cancelled pick must not commit a ledger mark")
	}
}

func TestSampler_FinderErrorIsUpstream(t *testing.T) {
	finder := &fakeFinder{err: errors.New("connection refused")}
	s, _, _, _ := newSampler(finder)

	_, err := s.Pick(context.Background(), game.Query{})
	if !app.IsUpstream(err) {
		t.Fatalf("err = %v, want upstream error", err)
	}
}
