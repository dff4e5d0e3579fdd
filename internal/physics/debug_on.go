//go:build sapdebug

package physics

import "fmt"

func verifyPairKey(k PairKey, lo, hi EntityID) {
	dlo, dhi := k.IDs()
	if dlo != lo || dhi != hi {
		panic(fmt.Sprintf("physics: pair key %d decodes to (%d,%d), want (%d,%d)", k, dlo, dhi, lo, hi))
	}
}

func verifyUniqueIDs(bodies []Body) {
	seen := make(map[EntityID]int, len(bodies))
	for i, b := range bodies {
		if j, ok := seen[b.ID]; ok {
			panic(fmt.Sprintf("physics: bodies %d and %d share id %d", j, i, b.ID))
		}
		seen[b.ID] = i
	}
}
