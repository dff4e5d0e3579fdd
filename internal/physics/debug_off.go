//go:build !sapdebug

package physics

func verifyPairKey(PairKey, EntityID, EntityID) {}

func verifyUniqueIDs([]Body) {}
