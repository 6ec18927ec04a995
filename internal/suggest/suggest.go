// Package suggest offers "did you mean" candidates for mistyped names.
package suggest

import (
	"fmt"
	"slices"
	"strings"
)

const maxResults = 3

// Names returns up to three entries of valid closest to unknown by edit
// distance, nearest first. Matching ignores case.
func Names(unknown string, valid []string) []string {
	u := strings.ToLower(strings.TrimSpace(unknown))
	maxDist := max(3, len(u)/2)

	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for _, v := range valid {
		d := levenshtein(u, strings.ToLower(v))
		if d <= maxDist {
			hits = append(hits, scored{v, d})
		}
	}
	slices.SortStableFunc(hits, func(a, b scored) int {
		if a.dist != b.dist {
			return a.dist - b.dist
		}
		return strings.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(len(hits), maxResults))
	for i := 0; i < len(hits) && i < maxResults; i++ {
		out = append(out, hits[i].name)
	}
	return out
}

// Unknown builds an error for an unrecognised name of the given kind, with
// suggestions when any are close enough.
func Unknown(kind, name string, valid []string) error {
	if s := Names(name, valid); len(s) > 0 {
		return fmt.Errorf("unknown %s %q (did you mean %s?)", kind, name, strings.Join(s, ", "))
	}
	return fmt.Errorf("unknown %s %q (valid: %s)", kind, name, strings.Join(valid, ", "))
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
