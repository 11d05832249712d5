// Package tag provides pure tag list operations: frequency ranking,
// randomized subset selection, and parsing of extracted tag lists.
package tag

import (
	"regexp"
	"sort"

	"github.com/goccy/go-json"
)

// MaxExtracted caps how many tags are kept from one extraction response.
const MaxExtracted = 4

// Shuffler is the randomness needed by ShuffleSubset. Injected so tests can
// assert exact outputs.
type Shuffler interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Shuffle randomizes the order of n elements via swap.
	Shuffle(n int, swap func(i, j int))
}

// Rank groups tags by exact string equality, counts occurrences, and returns
// the topN tags sorted by count descending. Ties keep first-encountered
// order (stable sort).
func Rank(tags []string, topN int) []string {
	if topN <= 0 || len(tags) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tags))
	var order []string
	for _, t := range tags {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return order
}

// ShuffleSubset returns a uniformly shuffled copy of tags truncated to a
// count drawn uniformly from [min, max], clamped to the input length.
// The result is a permutation-subset of the input; no duplicates are
// introduced.
func ShuffleSubset(r Shuffler, tags []string, min, max int) []string {
	if len(tags) == 0 || max <= 0 {
		return nil
	}
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}

	shuffled := make([]string, len(tags))
	copy(shuffled, tags)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	k := min + r.IntN(max-min+1)
	if k > len(shuffled) {
		k = len(shuffled)
	}
	return shuffled[:k]
}

var arrayPattern = regexp.MustCompile(`(?s)\[.*?\]`)

// ParseExtracted pulls a tag list out of a model response. The response text
// is expected to contain a JSON string array somewhere in its body; the
// first bracketed section that parses wins. At most MaxExtracted tags are
// kept. Returns nil if no well-formed array is present - never an error,
// callers fall back on their own defaults.
func ParseExtracted(text string) []string {
	raw := arrayPattern.FindString(text)
	if raw == "" {
		return nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	if len(tags) > MaxExtracted {
		tags = tags[:MaxExtracted]
	}
	return tags
}
