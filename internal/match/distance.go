package match

import "strings"

// Distance is the optimal string alignment distance between a and b: the
// number of rune insertions, deletions, substitutions and adjacent
// transpositions turning one into the other. "valeu" is one edit from
// "value".
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// rows i-2, i-1 and i of the edit matrix over rb
	before := make([]int, len(rb)+1)
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

			d := min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)

			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				d = min(d, before[j-2]+1)
			}

			cur[j] = d
		}

		before, prev, cur = prev, cur, before
	}

	return prev[len(rb)]
}

// Similarity scores a against b in [0, 1] after folding both; 1 means they
// fold to the same name. When both are prefixed tags the prefix and the
// name are scored separately and the lower score wins.
func Similarity(a, b string) float64 {
	fa, fb := Fold(a), Fold(b)

	pa, na, taggedA := strings.Cut(fa, ":")
	pb, nb, taggedB := strings.Cut(fb, ":")

	if taggedA && taggedB {
		return min(score(pa, pb), score(na, nb))
	}

	return score(fa, fb)
}

func score(a, b string) float64 {
	n := max(len([]rune(a)), len([]rune(b)))
	if n == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(n)
}
