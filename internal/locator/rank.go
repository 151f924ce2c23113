package locator

import "sort"

// RankByDistance returns the event indices ordered by descending distance, so the
// nearest event is at the end. Equal distances are ordered by descending index, which
// means that reading from the end presents the lower index first.
func RankByDistance(distances []float64) []int {
	ranked := make([]int, len(distances))
	for i := range ranked {
		ranked[i] = i
	}

	sort.Slice(ranked, func(a, b int) bool {
		i, j := ranked[a], ranked[b]
		if distances[i] != distances[j] {
			return distances[i] > distances[j]
		}
		return i > j
	})

	return ranked
}

// Nearest reads up to k indices from the end of ranked, nearest first
func Nearest(ranked []int, k int) []int {
	if k > len(ranked) {
		k = len(ranked)
	}
	if k < 0 {
		k = 0
	}

	nearest := make([]int, 0, k)
	for i := len(ranked) - 1; i >= len(ranked)-k; i-- {
		nearest = append(nearest, ranked[i])
	}
	return nearest
}
