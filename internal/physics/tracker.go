package physics

import "sort"

// Events lists how the set of colliding pairs changed since the last update.
// Each list is sorted by key.
type Events struct {
	Began   []PairKey // Colliding now, not last tick
	Ongoing []PairKey // Colliding now and last tick
	Ended   []PairKey // Colliding last tick, not now
}

// Tracker remembers which pairs were colliding on the previous tick so game
// code can react once per contact instead of once per frame.
type Tracker struct {
	active map[PairKey]struct{}
	next   map[PairKey]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		active: make(map[PairKey]struct{}),
		next:   make(map[PairKey]struct{}),
	}
}

// Update feeds the current tick's collisions and returns the transitions.
// Records that overlap on only one axis are ignored, so the output of
// either Compute or Detect can be passed in.
func (t *Tracker) Update(current Collisions) Events {
	var ev Events
	for k, c := range current {
		if !c.Both() {
			continue
		}
		t.next[k] = struct{}{}
		if _, ok := t.active[k]; ok {
			ev.Ongoing = append(ev.Ongoing, k)
		} else {
			ev.Began = append(ev.Began, k)
		}
	}
	for k := range t.active {
		if _, ok := t.next[k]; !ok {
			ev.Ended = append(ev.Ended, k)
		}
	}

	clear(t.active)
	t.active, t.next = t.next, t.active

	sortKeys(ev.Began)
	sortKeys(ev.Ongoing)
	sortKeys(ev.Ended)
	return ev
}

// Active reports whether the pair was colliding at the last update.
func (t *Tracker) Active(k PairKey) bool {
	_, ok := t.active[k]
	return ok
}

// Len returns the number of pairs colliding at the last update.
func (t *Tracker) Len() int {
	return len(t.active)
}

// Reset forgets all tracked pairs.
func (t *Tracker) Reset() {
	clear(t.active)
	clear(t.next)
}

func sortKeys(keys []PairKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}
