package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/minsu-kang/steamrec/adapters/clock"
	"github.com/minsu-kang/steamrec/adapters/memory"
)

var epoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestExpiryStore_RoundTrip(t *testing.T) {
	fc := clock.NewFake(epoch)
	s := memory.NewExpiryStore(fc)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "tags:abc", []byte(`["액션"]`), time.Hour); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Get(ctx, "tags:abc")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != `["액션"]` {
		t.Errorf("value = %q", got)
	}

	if ok, _ := s.Has(ctx, "tags:abc"); !ok {
		t.Error("Has = false, want true")
	}
	if ok, _ := s.Has(ctx, "tags:missing"); ok {
		t.Error("Has on absent key = true, want false")
	}
}

func TestExpiryStore_ExpiredKeysAreAbsent(t *testing.T) {
	fc := clock.NewFake(epoch)
	s := memory.NewExpiryStore(fc)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "rec:440", []byte{1}, 30*time.Minute); err != nil {
		t.Fatal(err)
	}

	fc.Advance(29 * time.Minute)
	if ok, _ := s.Has(ctx, "rec:440"); !ok {
		t.Error("entry expired early")
	}

	fc.Advance(time.Minute)
	if ok, _ := s.Has(ctx, "rec:440"); ok {
		t.Error("entry still live past its TTL")
	}
	if _, ok, _ := s.Get(ctx, "rec:440"); ok {
		t.Error("Get returned an expired entry")
	}
}

func TestExpiryStore_OverwriteResetsTTL(t *testing.T) {
	fc := clock.NewFake(epoch)
	s := memory.NewExpiryStore(fc)
	ctx := context.Background()

	s.SetWithTTL(ctx, "k", []byte("old"), time.Minute)
	fc.Advance(50 * time.Second)
	s.SetWithTTL(ctx, "k", []byte("new"), time.Minute)
	fc.Advance(50 * time.Second)

	got, ok, _ := s.Get(ctx, "k")
	if !ok || string(got) != "new" {
		t.Errorf("Get = %q, ok=%v; want refreshed entry", got, ok)
	}
}

func TestExpiryStore_SweepRemovesExpired(t *testing.T) {
	fc := clock.NewFake(epoch)
	s := memory.NewExpiryStore(fc)
	ctx := context.Background()

	s.SetWithTTL(ctx, "a", []byte{1}, time.Minute)
	s.SetWithTTL(ctx, "b", []byte{1}, time.Hour)

	fc.Advance(30 * time.Minute)
	s.Sweep()

	if s.Len() != 1 {
		t.Errorf("Len = %d after sweep, want 1", s.Len())
	}
	if ok, _ := s.Has(ctx, "b"); !ok {
		t.Error("live entry removed by sweep")
	}
}
