package voting

import (
	"sort"

	"github.com/KirkDiggler/portal/internal/dice"
)

func tally(votes map[string]string) map[string]int {
	counts := make(map[string]int, len(votes))
	for _, target := range votes {
		counts[target]++
	}
	return counts
}

// leaders returns the IDs holding the top count, sorted
func leaders(counts map[string]int) []string {
	best := 0
	var ids []string
	for id, n := range counts {
		switch {
		case n > best:
			best = n
			ids = []string{id}
		case n == best && n > 0:
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// pickEliminated chooses among the leaders; a tie is broken uniformly
func pickEliminated(r dice.Roller, counts map[string]int) (string, bool) {
	top := leaders(counts)
	switch len(top) {
	case 0:
		return "", false
	case 1:
		return top[0], false
	default:
		return top[dice.Pick(r, len(top))], true
	}
}
