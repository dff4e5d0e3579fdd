package physics

import "sort"

// sweeper runs sweep-and-prune along one axis. Its buffers are reused
// between calls so a steady-state tick does not allocate for them.
type sweeper struct {
	axis   Axis
	order  []int // body indices sorted by lower bound
	active []int // indices whose interval may still overlap later bodies
}

// sweep records every layer-compatible pair whose intervals overlap on the
// sweeper's axis, setting that axis' flag on the pair's record and creating
// the record on first sight. It returns the number of flags set.
//
// Bodies are visited in order of lower bound. Each new body is compared
// with the active set; an active body that ends strictly before the new one
// starts can't reach any later body either and is dropped. Touching
// intervals therefore count as overlapping.
func (s *sweeper) sweep(bodies []Body, m *LayerMatrix, records map[PairKey]Collision) int {
	if len(bodies) < 2 {
		return 0
	}

	axis := s.axis
	s.order = s.order[:0]
	for i := range bodies {
		s.order = append(s.order, i)
	}
	sort.SliceStable(s.order, func(i, j int) bool {
		return bodies[s.order[i]].lower(axis) < bodies[s.order[j]].lower(axis)
	})

	marked := 0
	s.active = s.active[:0]
	for _, ni := range s.order {
		nb := &bodies[ni]
		start := nb.lower(axis)

		kept := s.active[:0]
		for _, ai := range s.active {
			ab := &bodies[ai]
			if ab.upper(axis) < start {
				continue
			}
			kept = append(kept, ai)

			if !m.Allowed(nb.Layer, ab.Layer) {
				continue
			}
			key := MakePairKey(ab.ID, nb.ID)
			rec, ok := records[key]
			if !ok {
				lo, hi := key.IDs()
				rec = Collision{A: lo, B: hi}
			}
			rec.mark(axis)
			records[key] = rec
			marked++
		}
		s.active = append(kept, ni)
	}
	s.active = s.active[:0]
	return marked
}
