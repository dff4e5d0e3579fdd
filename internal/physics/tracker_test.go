package physics

import (
	"reflect"
	"testing"
)

func TestTrackerTransitions(t *testing.T) {
	bp := NewBroadPhase(DefaultLayerMatrix())
	tr := NewTracker()

	player := box(1, 0, 0, 4, 4, LayerPlayer)
	enemy := box(2, 10, 0, 4, 4, LayerEnemy)
	wall := box(3, 0, 3, 20, 1, LayerWall)

	k12 := MakePairKey(1, 2)
	k13 := MakePairKey(1, 3)
	k23 := MakePairKey(2, 3)

	steps := []struct {
		name  string
		enemy Body
		want  Events
	}{
		{
			name:  "first frame",
			enemy: enemy,
			want:  Events{Began: []PairKey{k13, k23}},
		},
		{
			name:  "enemy reaches player",
			enemy: box(2, 3, 0, 4, 4, LayerEnemy),
			want:  Events{Began: []PairKey{k12}, Ongoing: []PairKey{k13, k23}},
		},
		{
			name:  "enemy leaves everything",
			enemy: box(2, 30, 30, 4, 4, LayerEnemy),
			want:  Events{Ongoing: []PairKey{k13}, Ended: []PairKey{k12, k23}},
		},
	}

	for _, step := range steps {
		ev := tr.Update(bp.Compute([]Body{player, step.enemy, wall}))
		if !reflect.DeepEqual(ev, step.want) {
			t.Errorf("%s: Update() = %+v, expected %+v", step.name, ev, step.want)
		}
	}

	if !tr.Active(k13) || tr.Active(k12) {
		t.Error("Active() does not reflect the last update")
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", tr.Len())
	}

	tr.Reset()
	ev := tr.Update(bp.Compute([]Body{player, wall}))
	if !reflect.DeepEqual(ev.Began, []PairKey{k13}) {
		t.Errorf("after Reset, pair should begin again, got %+v", ev)
	}
}

func TestTrackerIgnoresSingleAxisRecords(t *testing.T) {
	tr := NewTracker()
	ev := tr.Update(Collisions{
		MakePairKey(1, 2): {A: 1, B: 2, OverlapX: true},
	})
	if len(ev.Began) != 0 || tr.Len() != 0 {
		t.Errorf("single-axis record should be ignored, got %+v", ev)
	}
}
