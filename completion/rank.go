package completion

import (
	"sort"
	"strings"
)

// Rank filters candidates against the partial word and orders the result
// deterministically. Filtering is a case-insensitive prefix match, an
// empty partial keeps everything. Duplicate values are collapsed keeping
// the highest-ranked kind. Ordering is by kind first (commands before
// enum values before parameter hints before paths before options), then
// alphabetical within a kind.
func Rank(candidates []Candidate, partial string) []Candidate {
	prefix := strings.ToLower(partial)

	byValue := map[string]int{}
	ranked := make([]Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if prefix != "" && !strings.HasPrefix(strings.ToLower(candidate.Value), prefix) {
			continue
		}
		if at, seen := byValue[candidate.Value]; seen {
			if candidate.Kind < ranked[at].Kind {
				ranked[at] = candidate
			}
			continue
		}
		byValue[candidate.Value] = len(ranked)
		ranked = append(ranked, candidate)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Kind != ranked[j].Kind {
			return ranked[i].Kind < ranked[j].Kind
		}
		return strings.ToLower(ranked[i].Value) < strings.ToLower(ranked[j].Value)
	})

	return ranked
}
