package app_test

import (
	"context"
	"time"

	"github.com/minsu-kang/steamrec/domain/game"
	"github.com/minsu-kang/steamrec/ports"
)

// fakeFinder replays a fixed sequence of candidates. The last one repeats
// once the sequence is exhausted.
type fakeFinder struct {
	results   []game.Candidate
	err       error
	calls     int
	lastQuery game.Query
}

func (f *fakeFinder) Random(ctx context.Context, q game.Query) (game.Candidate, bool, error) {
	f.calls++
	f.lastQuery = q
	if f.err != nil {
		return game.Candidate{}, false, f.err
	}
	if len(f.results) == 0 {
		return game.Candidate{}, false, nil
	}
	c := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return c, true, nil
}

type recordingMetrics struct {
	attempts    []int
	denied      []string
	cacheHits   int
	cacheMisses int
}

func (m *recordingMetrics) RequestServed(method, route string, status int, d time.Duration) {}

func (m *recordingMetrics) RateLimitDenied(pattern string) {
	m.denied = append(m.denied, pattern)
}

func (m *recordingMetrics) SamplerAttempts(n int) {
	m.attempts = append(m.attempts, n)
}

func (m *recordingMetrics) ExtractionCache(hit bool) {
	if hit {
		m.cacheHits++
	} else {
		m.cacheMisses++
	}
}

type fakeExtractor struct {
	tags  []string
	err   error
	calls int
}

func (f *fakeExtractor) ExtractTags(ctx context.Context, freeText string) ([]string, error) {
	f.calls++
	return f.tags, f.err
}

type fakeLibrary struct {
	owned  []int64
	recent []int64
	err    error
}

func (f *fakeLibrary) OwnedAppIDs(ctx context.Context, profileID string) ([]int64, error) {
	return f.owned, f.err
}

func (f *fakeLibrary) RecentlyPlayedAppIDs(ctx context.Context, profileID string) ([]int64, error) {
	return f.recent, f.err
}

type fakeCatalog struct {
	tagsByApp map[int64][]string
	allTags   []string
	err       error
}

func (f *fakeCatalog) TagNamesForApps(ctx context.Context, appIDs []int64) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for _, id := range appIDs {
		out = append(out, f.tagsByApp[id]...)
	}
	return out, nil
}

func (f *fakeCatalog) AllTagNames(ctx context.Context) ([]string, error) {
	return f.allTags, f.err
}

var (
	_ ports.GameFinder    = (*fakeFinder)(nil)
	_ ports.Metrics       = (*recordingMetrics)(nil)
	_ ports.TagExtractor  = (*fakeExtractor)(nil)
	_ ports.PlayerLibrary = (*fakeLibrary)(nil)
	_ ports.TagCatalog    = (*fakeCatalog)(nil)
)
