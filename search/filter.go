package search

// filterOverlapping greedily de-duplicates matches that share token
// indices. Matches must already be sorted in priority order; the first
// match covering a token wins.
func filterOverlapping(matches []Match) []Match {
	covered := make(map[int]struct{})
	filtered := matches[:0:0]
	for _, m := range matches {
		overlaps := false
		for i := m.Start; i < m.End; i++ {
			if _, ok := covered[i]; ok {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		for i := m.Start; i < m.End; i++ {
			covered[i] = struct{}{}
		}
		filtered = append(filtered, m)
	}
	return filtered
}
