// Package partition enumerates the ways a word sequence can be split
// into contiguous groups, each group destined for one matcher call.
package partition

import (
	"iter"
	"sort"
)

// Group is a contiguous run of word indices, [Start, End).
type Group struct {
	Start, End int
}

// Words returns the words this group covers.
func (g Group) Words(words []string) []string {
	return words[g.Start:g.End]
}

// Enumerate yields every partition of words into contiguous groups, as
// 2^(n-1) bitmasks over the n-1 "cut points" between words. Coarser
// partitions (fewer groups, i.e. fewer set bits) come first; ties are
// broken lexicographically over cut-point position, ascending. A
// single word (n<=1) has exactly one partition: itself.
func Enumerate(words []string) iter.Seq[[]Group] {
	n := len(words)
	return func(yield func([]Group) bool) {
		if n == 0 {
			return
		}
		cuts := n - 1
		total := 1 << cuts
		for _, mask := range orderedMasks(cuts, total) {
			if !yield(groupsFromMask(mask, cuts, n)) {
				return
			}
		}
	}
}

// orderedMasks returns every mask in [0, total) ordered by ascending
// popcount (fewer cuts, i.e. coarser partitions, first), then
// lexicographically over the ascending list of set cut points: at the
// leftmost cut point where two masks differ, the one cutting there
// comes first.
func orderedMasks(cuts, total int) []int {
	masks := make([]int, total)
	for i := range masks {
		masks[i] = i
	}
	// Stable bucket sort by popcount: total is at most 2^(cuts) and
	// popcount is O(cuts), cheap enough not to need anything fancier.
	buckets := make([][]int, cuts+1)
	for _, m := range masks {
		p := popcount(m)
		buckets[p] = append(buckets[p], m)
	}
	ordered := make([]int, 0, total)
	for _, b := range buckets {
		sort.Slice(b, func(i, j int) bool {
			diff := b[i] ^ b[j]
			return b[i]&(diff&-diff) != 0
		})
		ordered = append(ordered, b...)
	}
	return ordered
}

func popcount(m int) int {
	count := 0
	for m != 0 {
		m &= m - 1
		count++
	}
	return count
}

// groupsFromMask turns a cut-point bitmask into the resulting
// contiguous groups over n words. Bit i set means "cut between word i
// and word i+1".
func groupsFromMask(mask, cuts, n int) []Group {
	groups := make([]Group, 0, cuts+1)
	start := 0
	for i := 0; i < cuts; i++ {
		if mask&(1<<i) != 0 {
			groups = append(groups, Group{Start: start, End: i + 1})
			start = i + 1
		}
	}
	groups = append(groups, Group{Start: start, End: n})
	return groups
}

// Coverage reports the fraction of words that land in a group with at
// least one candidate, given a predicate over each group's match
// count.
func Coverage(groups []Group, n int, matched func(Group) bool) float64 {
	if n == 0 {
		return 0
	}
	covered := 0
	for _, g := range groups {
		if matched(g) {
			covered += g.End - g.Start
		}
	}
	return float64(covered) / float64(n)
}
