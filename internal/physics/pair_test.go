package physics

import (
	"math/rand"
	"testing"
)

func TestPairKeyCommutative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		a := EntityID(rng.Uint32())
		b := EntityID(rng.Uint32())
		if MakePairKey(a, b) != MakePairKey(b, a) {
			t.Fatalf("MakePairKey(%d, %d) != MakePairKey(%d, %d)", a, b, b, a)
		}
		if CantorPairKey(a, b) != CantorPairKey(b, a) {
			t.Fatalf("CantorPairKey(%d, %d) is not commutative", a, b)
		}
	}
}

func TestPairKeyRoundTrip(t *testing.T) {
	tests := []struct {
		a, b EntityID
	}{
		{0, 0},
		{0, 1},
		{7, 3},
		{MaxEntityID, 0},
		{MaxEntityID, MaxEntityID},
		{MaxEntityID - 1, MaxEntityID},
	}

	for _, tc := range tests {
		lo, hi := MakePairKey(tc.a, tc.b).IDs()
		wantLo, wantHi := tc.a, tc.b
		if wantLo > wantHi {
			wantLo, wantHi = wantHi, wantLo
		}
		if lo != wantLo || hi != wantHi {
			t.Errorf("MakePairKey(%d, %d).IDs() = (%d, %d), expected (%d, %d)", tc.a, tc.b, lo, hi, wantLo, wantHi)
		}
	}
}

func TestPairKeyInjectiveSmallRange(t *testing.T) {
	const n = 300
	seen := make(map[PairKey][2]EntityID)
	cantor := make(map[uint64][2]EntityID)
	for a := EntityID(0); a < n; a++ {
		for b := a; b < n; b++ {
			k := MakePairKey(a, b)
			if prev, ok := seen[k]; ok {
				t.Fatalf("MakePairKey collision: %v and (%d,%d)", prev, a, b)
			}
			seen[k] = [2]EntityID{a, b}

			c := CantorPairKey(a, b)
			if prev, ok := cantor[c]; ok {
				t.Fatalf("CantorPairKey collision: %v and (%d,%d)", prev, a, b)
			}
			cantor[c] = [2]EntityID{a, b}
		}
	}
}

func TestPairKeyInjectiveAtUpperBound(t *testing.T) {
	// IDs clustered just under the top of the range, where narrower
	// pairing functions start to wrap.
	ids := make([]EntityID, 0, 64)
	for i := EntityID(0); i < 64; i++ {
		ids = append(ids, MaxEntityID-i)
	}

	seen := make(map[PairKey][2]EntityID)
	for i, a := range ids {
		for _, b := range ids[i:] {
			k := MakePairKey(a, b)
			if prev, ok := seen[k]; ok {
				t.Fatalf("MakePairKey collision near MaxEntityID: %v and (%d,%d)", prev, a, b)
			}
			seen[k] = [2]EntityID{a, b}
		}
	}
}

func TestCantorPairKeySafeBound(t *testing.T) {
	m := MaxCantorEntityID

	// At the documented bound the largest key 2M²+2M still fits.
	got := CantorPairKey(m, m)
	want := 2*uint64(m)*uint64(m) + 2*uint64(m)
	if got != want {
		t.Fatalf("CantorPairKey(M, M) = %d, expected %d", got, want)
	}

	// Keys are monotonic in each argument below the bound, so no wrap.
	if CantorPairKey(m-1, m) >= got || CantorPairKey(m, m-1) >= got {
		t.Error("CantorPairKey should be increasing up to the safe bound")
	}

	// One past the bound the key wraps and drops below its neighbour.
	if CantorPairKey(m+1, m+1) > got {
		t.Error("CantorPairKey(M+1, M+1) should overflow past the documented bound")
	}
}

func TestPairKeyString(t *testing.T) {
	if s := MakePairKey(9, 2).String(); s != "(2,9)" {
		t.Errorf("String() = %q, expected (2,9)", s)
	}
}
