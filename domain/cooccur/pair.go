// Package cooccur models tag pair co-occurrence identity.
// Counts themselves are accumulated offline; this package only defines how
// two tags form a lookup key and in what order candidate pairs are tried.
package cooccur

// PairKey is an unordered pair of tag names. The two tags are stored in
// lexicographic order so (A,B) and (B,A) are the same key.
// Always construct via NewPairKey; First <= Second must hold.
type PairKey struct {
	First  string
	Second string
}

// NewPairKey canonicalizes two tags into a PairKey.
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{First: a, Second: b}
}

// Pairs enumerates every unordered pair of the input tags, in input order:
// outer index ascending, inner index always ahead of it. Callers control
// lookup priority by the order they pass tags in.
func Pairs(tags []string) []PairKey {
	var keys []PairKey
	for i := 0; i < len(tags); i++ {
		for j := i + 1; j < len(tags); j++ {
			keys = append(keys, NewPairKey(tags[i], tags[j]))
		}
	}
	return keys
}
