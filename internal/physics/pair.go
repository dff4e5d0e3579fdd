package physics

import (
	"fmt"
	"math"
)

// EntityID identifies a body. IDs must be unique within one broad-phase call.
type EntityID uint32

// MaxEntityID is the largest ID MakePairKey encodes without collisions,
// which is the whole EntityID range.
const MaxEntityID = EntityID(math.MaxUint32)

// PairKey identifies an unordered pair of bodies.
type PairKey uint64

// MakePairKey packs two IDs into one key, smaller ID in the high half.
// The key is the same for either argument order, and two keys are equal
// only if they were made from the same unordered pair.
func MakePairKey(a, b EntityID) PairKey {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	k := PairKey(uint64(lo)<<32 | uint64(hi))
	verifyPairKey(k, lo, hi)
	return k
}

// IDs decodes the key into its two IDs, smaller first.
func (k PairKey) IDs() (lo, hi EntityID) {
	return EntityID(k >> 32), EntityID(uint32(k))
}

// String formats the key as its decoded pair.
func (k PairKey) String() string {
	lo, hi := k.IDs()
	return fmt.Sprintf("(%d,%d)", lo, hi)
}

// MaxCantorEntityID is the largest ID for which CantorPairKey stays below
// 2^64. With both IDs at most M the largest key is 2M^2+2M, which first
// exceeds math.MaxUint64 at M = 3037000500.
const MaxCantorEntityID = EntityID(3037000499)

// CantorPairKey is the symmetric Cantor pairing of (min, max):
// s(s+1)/2 + max with s = min+max. It is injective over unordered pairs but
// only safe up to MaxCantorEntityID; above that the result wraps and
// distinct pairs can share a key. MakePairKey has no such limit and is what
// the broad phase uses.
func CantorPairKey(a, b EntityID) uint64 {
	lo, hi := uint64(a), uint64(b)
	if lo > hi {
		lo, hi = hi, lo
	}
	s := lo + hi
	var tri uint64
	if s%2 == 0 {
		tri = (s / 2) * (s + 1)
	} else {
		tri = s * ((s + 1) / 2)
	}
	return tri + hi
}
