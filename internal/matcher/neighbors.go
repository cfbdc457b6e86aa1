package matcher

// neighbors generates every string reachable from s by a single
// insertion, deletion, substitution, or adjacent transposition over
// the lowercase Latin alphabet plus digits.
func neighbors(s string) []string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	runes := []rune(s)
	n := len(runes)

	out := make([]string, 0, n*len(alphabet)*2)

	// Deletion
	for i := 0; i < n; i++ {
		out = append(out, string(runes[:i])+string(runes[i+1:]))
	}

	// Substitution
	for i := 0; i < n; i++ {
		for _, r := range alphabet {
			if r == runes[i] {
				continue
			}
			candidate := make([]rune, n)
			copy(candidate, runes)
			candidate[i] = r
			out = append(out, string(candidate))
		}
	}

	// Insertion
	for i := 0; i <= n; i++ {
		for _, r := range alphabet {
			candidate := make([]rune, 0, n+1)
			candidate = append(candidate, runes[:i]...)
			candidate = append(candidate, r)
			candidate = append(candidate, runes[i:]...)
			out = append(out, string(candidate))
		}
	}

	// Adjacent transposition
	for i := 0; i+1 < n; i++ {
		candidate := make([]rune, n)
		copy(candidate, runes)
		candidate[i], candidate[i+1] = candidate[i+1], candidate[i]
		out = append(out, string(candidate))
	}

	return out
}

// expandNeighbors returns the union of neighbors(word) for every word,
// deduplicated, for use as a disjunction query's term set.
func expandNeighbors(words []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range words {
		for _, n := range neighbors(w) {
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
