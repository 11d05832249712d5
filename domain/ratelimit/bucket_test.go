package ratelimit_test

import (
	"testing"
	"time"

	"github.com/minsu-kang/steamrec/domain/ratelimit"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestConsume_AllowsUntilEmpty(t *testing.T) {
	cfg := ratelimit.Config{Capacity: 3, RefillTokens: 3, RefillPeriod: time.Minute, Mode: ratelimit.Greedy}
	state := ratelimit.NewState(cfg, baseTime)

	for i := 0; i < 3; i++ {
		var allowed bool
		allowed, state = ratelimit.Consume(state, cfg, 1, baseTime)
		if !allowed {
			t.Fatalf("consume %d: expected allowed", i+1)
		}
	}

	allowed, _ := ratelimit.Consume(state, cfg, 1, baseTime)
	if allowed {
		t.Error("expected denial once bucket is empty")
	}
}

func TestConsume_GreedyRefillsContinuously(t *testing.T) {
	// 2 tokens per second, continuously: after 500ms one token is earned.
	cfg := ratelimit.Config{Capacity: 60, RefillTokens: 2, RefillPeriod: time.Second, Mode: ratelimit.Greedy}
	state := ratelimit.State{Tokens: 0, LastRefill: baseTime}

	allowed, state := ratelimit.Consume(state, cfg, 1, baseTime.Add(500*time.Millisecond))
	if !allowed {
		t.Error("expected one token earned after half a period")
	}

	allowed, _ = ratelimit.Consume(state, cfg, 1, baseTime.Add(500*time.Millisecond))
	if allowed {
		t.Error("expected second token not yet earned")
	}
}

func TestConsume_IntervalRefillsWholePeriodsOnly(t *testing.T) {
	cfg := ratelimit.Config{Capacity: 1, RefillTokens: 1, RefillPeriod: 2 * time.Second, Mode: ratelimit.Interval}
	state := ratelimit.State{Tokens: 0, LastRefill: baseTime}

	allowed, state := ratelimit.Consume(state, cfg, 1, baseTime.Add(1999*time.Millisecond))
	if allowed {
		t.Error("expected no tokens before a full period elapses")
	}

	allowed, _ = ratelimit.Consume(state, cfg, 1, baseTime.Add(2*time.Second))
	if !allowed {
		t.Error("expected a token after one full period")
	}
}

func TestConsume_RefillCappedAtCapacity(t *testing.T) {
	cfg := ratelimit.Config{Capacity: 3, RefillTokens: 3, RefillPeriod: time.Minute, Mode: ratelimit.Interval}
	state := ratelimit.State{Tokens: 0, LastRefill: baseTime}

	// Hours of idle time must not bank more than capacity.
	_, state = ratelimit.Consume(state, cfg, 0, baseTime.Add(5*time.Hour))
	if state.Tokens != 3 {
		t.Errorf("tokens = %d, want capacity 3", state.Tokens)
	}
}

func TestConsume_NeverExceedsCapacityPerWindow(t *testing.T) {
	cfg := ratelimit.Config{Capacity: 5, RefillTokens: 5, RefillPeriod: time.Minute, Mode: ratelimit.Interval}
	state := ratelimit.NewState(cfg, baseTime)

	granted := 0
	now := baseTime
	// Many calls inside one refill window, at varying instants.
	for i := 0; i < 50; i++ {
		now = now.Add(time.Second)
		var allowed bool
		allowed, state = ratelimit.Consume(state, cfg, 1, now)
		if allowed {
			granted++
		}
	}
	if granted != 5 {
		t.Errorf("granted %d within one window, want 5", granted)
	}
}

func TestConsume_Deterministic(t *testing.T) {
	cfg := ratelimit.Config{Capacity: 10, RefillTokens: 1, RefillPeriod: time.Second, Mode: ratelimit.Greedy}
	state := ratelimit.State{Tokens: 4, LastRefill: baseTime}
	now := baseTime.Add(3 * time.Second)

	a1, s1 := ratelimit.Consume(state, cfg, 2, now)
	a2, s2 := ratelimit.Consume(state, cfg, 2, now)

	if a1 != a2 || s1 != s2 {
		t.Error("Consume should be deterministic")
	}
}
