package tag

import (
	"regexp"
	"sort"
)

// Catalog tags are Korean names plus a handful of English genre shorthands.
var (
	hangulPattern  = regexp.MustCompile(`[\x{AC00}-\x{D7A3}]`)
	allowedEnglish = map[string]struct{}{
		"2D": {}, "3D": {}, "RPG": {}, "FPS": {}, "MMO": {},
	}
)

// FilterDisplayNames keeps tag names suitable for the public tag listing:
// names containing Hangul, or members of the allowed English set. The result
// is deduplicated and sorted.
func FilterDisplayNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		if _, ok := allowedEnglish[name]; !ok && !hangulPattern.MatchString(name) {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
