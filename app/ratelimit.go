package app

import (
	"sync"

	"github.com/minsu-kang/steamrec/domain/ratelimit"
	"github.com/minsu-kang/steamrec/ports"
)

// Rule binds a path glob pattern to a bucket configuration.
type Rule struct {
	Pattern string
	Config  ratelimit.Config
}

// PathLimiter routes a request path to the matching token bucket.
// Rules are checked in registration order and the first match wins, so a
// specific pattern with a stricter quota must be registered before a broader
// wildcard covering the same prefix. Paths matching no rule use the default
// bucket.
type PathLimiter struct {
	clock   ports.Clock
	metrics ports.Metrics

	mu       sync.RWMutex
	rules    []*patternBucket
	fallback *lockedBucket
}

type patternBucket struct {
	pattern string
	bucket  *lockedBucket
}

// lockedBucket serializes Consume calls on one bucket so the check-then-act
// cannot race between concurrent requests.
type lockedBucket struct {
	mu    sync.Mutex
	cfg   ratelimit.Config
	state ratelimit.State
}

func (b *lockedBucket) tryConsume(n int64, clock ports.Clock) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	allowed, next := ratelimit.Consume(b.state, b.cfg, n, clock.Now())
	b.state = next
	return allowed
}

// NewPathLimiter creates a limiter with the given ordered rules and default
// bucket configuration. All buckets start full.
func NewPathLimiter(rules []Rule, fallback ratelimit.Config, clock ports.Clock, metrics ports.Metrics) *PathLimiter {
	l := &PathLimiter{clock: clock, metrics: metrics}
	l.Replace(rules, fallback)
	return l
}

// Allow consumes one token from the bucket matching path. Returns false when
// the caller is over quota; no downstream work should happen in that case.
func (l *PathLimiter) Allow(path string) bool {
	pattern, bucket := l.match(path)
	if bucket.tryConsume(1, l.clock) {
		return true
	}
	l.metrics.RateLimitDenied(pattern)
	return false
}

// Replace swaps in a new rule table, resetting all buckets to full.
// Used on configuration reload.
func (l *PathLimiter) Replace(rules []Rule, fallback ratelimit.Config) {
	now := l.clock.Now()
	fresh := make([]*patternBucket, 0, len(rules))
	for _, r := range rules {
		fresh = append(fresh, &patternBucket{
			pattern: r.Pattern,
			bucket:  &lockedBucket{cfg: r.Config, state: ratelimit.NewState(r.Config, now)},
		})
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.rules = fresh
	l.fallback = &lockedBucket{cfg: fallback, state: ratelimit.NewState(fallback, now)}
}

func (l *PathLimiter) match(path string) (string, *lockedBucket) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, pb := range l.rules {
		if ratelimit.MatchPath(pb.pattern, path) {
			return pb.pattern, pb.bucket
		}
	}
	return "default", l.fallback
}
