package match

import (
	"sort"
)

const (
	// DefaultMinScore is the minimum similarity for a name to be suggested.
	DefaultMinScore = 0.6
	// DefaultMaxSuggestions caps the number of returned suggestions.
	DefaultMaxSuggestions = 3
)

type scored struct {
	name  string
	score float64
}

// Suggest returns up to DefaultMaxSuggestions known names that look like
// unknown, best first. Ties keep the order of known. Names identical to
// unknown are never suggested.
func Suggest(unknown string, known []string) []string {
	return SuggestN(unknown, known, DefaultMinScore, DefaultMaxSuggestions)
}

// SuggestN is Suggest with explicit threshold and limit.
func SuggestN(unknown string, known []string, minScore float64, limit int) []string {
	if unknown == "" || limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(known))

	var candidates []scored

	for _, k := range known {
		if _, dup := seen[k]; dup || k == unknown {
			continue
		}

		seen[k] = struct{}{}

		s := Similarity(unknown, k)
		if s >= minScore {
			candidates = append(candidates, scored{name: k, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}

	return out
}
