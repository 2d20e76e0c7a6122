package stats

import "sort"

// modeOf returns the key with the highest count, breaking ties by lexical
// order for determinism. Empty input yields "".
//
// Implemented as an explicit scan rather than a database aggregate so the
// tie-break behavior is portable and testable.
func modeOf(counts map[string]int) string {
	best, bestCount := "", 0

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if counts[key] > bestCount {
			best, bestCount = key, counts[key]
		}
	}

	return best
}

// orderedCounts converts a count map into rows sorted by count descending,
// then key ascending. Used for DNF reason grouping.
func orderedCounts(counts map[string]int) []ReasonCount {
	rows := make([]ReasonCount, 0, len(counts))
	for reason, count := range counts {
		rows = append(rows, ReasonCount{Reason: reason, Count: count})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Reason < rows[j].Reason
	})

	return rows
}
