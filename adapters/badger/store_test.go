package badger_test

import (
	"context"
	"testing"
	"time"

	"github.com/minsu-kang/steamrec/adapters/badger"
)

func openStore(t *testing.T) *badger.Store {
	t.Helper()
	s, err := badger.Open("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "rec:440", []byte{1}, time.Hour); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Get(ctx, "rec:440")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("value = %v", got)
	}

	if ok, _ := s.Has(ctx, "rec:440"); !ok {
		t.Error("Has = false, want true")
	}
}

func TestStore_AbsentKey(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "rec:missing"); ok || err != nil {
		t.Errorf("Get absent: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Has(ctx, "rec:missing"); ok || err != nil {
		t.Errorf("Has absent: ok=%v err=%v", ok, err)
	}
}

func TestStore_ExpiredKeyIsAbsent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "rec:570", []byte{1}, 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)

	if ok, _ := s.Has(ctx, "rec:570"); ok {
		t.Error("entry still live past its TTL")
	}
}
