// Package ratelimit provides pure rate limiting algorithms.
// All functions are deterministic - same input always produces same output.
package ratelimit

import "time"

// RefillMode selects how a bucket earns tokens back.
type RefillMode int

const (
	// Greedy refills continuously, proportional to elapsed time.
	Greedy RefillMode = iota
	// Interval refills in whole periods only: no tokens are earned
	// until a full RefillPeriod has passed.
	Interval
)

// Config holds token bucket configuration (value type).
type Config struct {
	Capacity     int64         // Maximum tokens the bucket can hold
	RefillTokens int64         // Tokens earned per refill period
	RefillPeriod time.Duration // Length of one refill period
	Mode         RefillMode
}

// State represents the current state of a token bucket (value type).
type State struct {
	Tokens     int64     // Tokens currently available
	LastRefill time.Time // When tokens were last credited
}

// NewState returns a full bucket.
func NewState(cfg Config, now time.Time) State {
	return State{Tokens: cfg.Capacity, LastRefill: now}
}

// Consume attempts to take n tokens from the bucket.
// This is a PURE function - no side effects, deterministic.
// The caller must persist newState; a concurrent caller sharing one bucket
// must serialize Consume calls so check-then-act cannot race.
func Consume(state State, cfg Config, n int64, now time.Time) (allowed bool, newState State) {
	state = refill(state, cfg, now)
	if state.Tokens >= n {
		state.Tokens -= n
		return true, state
	}
	return false, state
}

func refill(state State, cfg Config, now time.Time) State {
	if cfg.RefillPeriod <= 0 || cfg.RefillTokens <= 0 {
		return state
	}
	elapsed := now.Sub(state.LastRefill)
	if elapsed <= 0 {
		return state
	}

	var earned int64
	switch cfg.Mode {
	case Interval:
		periods := int64(elapsed / cfg.RefillPeriod)
		if periods <= 0 {
			return state
		}
		earned = periods * cfg.RefillTokens
		state.LastRefill = state.LastRefill.Add(time.Duration(periods) * cfg.RefillPeriod)
	default:
		earned = int64(float64(cfg.RefillTokens) * (float64(elapsed) / float64(cfg.RefillPeriod)))
		if earned <= 0 {
			return state
		}
		// Advance only by the time the earned tokens account for, so the
		// fractional remainder keeps accruing.
		perToken := time.Duration(int64(cfg.RefillPeriod) / cfg.RefillTokens)
		state.LastRefill = state.LastRefill.Add(time.Duration(earned) * perToken)
	}

	state.Tokens += earned
	if state.Tokens > cfg.Capacity {
		state.Tokens = cfg.Capacity
		state.LastRefill = now
	}
	return state
}
