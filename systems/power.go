package systems

import (
	"sort"

	"github.com/pthm-cable/evac/components"
)

type queued struct {
	idx   int
	seq   uint64
	power components.PowerLevel
}

// PowerQueue orders powered slots by activation, oldest first.
//
// Eviction pops from the tail (last activated is shed first). Evicted slots
// are remembered in activation order and replayed front to back when
// generation frees up again.
type PowerQueue struct {
	seq       uint64
	on        []queued
	suspended []queued
}

// PushBack appends idx as the most recently activated slot.
// A slot already in the queue is moved to the tail.
func (q *PowerQueue) PushBack(idx int) {
	q.Remove(idx)
	q.seq++
	q.on = append(q.on, queued{idx: idx, seq: q.seq})
}

// PopBack removes and returns the most recently activated slot.
func (q *PowerQueue) PopBack() (int, bool) {
	e, ok := q.popBack()
	return e.idx, ok
}

func (q *PowerQueue) popBack() (queued, bool) {
	n := len(q.on)
	if n == 0 {
		return queued{}, false
	}
	e := q.on[n-1]
	q.on = q.on[:n-1]
	return e, true
}

// Remove drops idx from the queue, reporting whether it was present.
func (q *PowerQueue) Remove(idx int) bool {
	for i, e := range q.on {
		if e.idx == idx {
			q.on = append(q.on[:i], q.on[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether idx is in the queue.
func (q *PowerQueue) Contains(idx int) bool {
	for _, e := range q.on {
		if e.idx == idx {
			return true
		}
	}
	return false
}

// Items returns the queued slot indices, oldest first.
func (q *PowerQueue) Items() []int {
	out := make([]int, len(q.on))
	for i, e := range q.on {
		out[i] = e.idx
	}
	return out
}

// Len returns the number of queued slots.
func (q *PowerQueue) Len() int {
	return len(q.on)
}

// Suspended returns evicted slot indices in replay order.
func (q *PowerQueue) Suspended() []int {
	out := make([]int, len(q.suspended))
	for i, e := range q.suspended {
		out[i] = e.idx
	}
	return out
}

// Forget drops idx from the suspended list.
func (q *PowerQueue) Forget(idx int) {
	for i, e := range q.suspended {
		if e.idx == idx {
			q.suspended = append(q.suspended[:i], q.suspended[i+1:]...)
			return
		}
	}
}

// Clear empties both lists.
func (q *PowerQueue) Clear() {
	q.on = q.on[:0]
	q.suspended = q.suspended[:0]
}

func (q *PowerQueue) suspend(e queued) {
	i := sort.Search(len(q.suspended), func(i int) bool { return q.suspended[i].seq > e.seq })
	q.suspended = append(q.suspended, queued{})
	copy(q.suspended[i+1:], q.suspended[i:])
	q.suspended[i] = e
}

func (q *PowerQueue) restore(e queued) {
	q.Forget(e.idx)
	i := sort.Search(len(q.on), func(i int) bool { return q.on[i].seq > e.seq })
	q.on = append(q.on, queued{})
	copy(q.on[i+1:], q.on[i:])
	q.on[i] = queued{idx: e.idx, seq: e.seq}
}

// SetPower applies a player power request to a slot and keeps the queue in
// step. Raising the level counts as a fresh activation. Generators never
// enter the queue since they do not draw power.
func SetPower(sh *Ship, idx int, level components.PowerLevel) {
	s := &sh.Slots[idx]
	prev := s.Power
	s.Power = level
	if s.AutoOff {
		s.AutoOff = false
		sh.Priority.Forget(idx)
	}
	if s.Type == components.PanelGen {
		return
	}
	switch {
	case level == components.PowerOff:
		sh.Priority.Remove(idx)
	case level > prev || !sh.Priority.Contains(idx):
		sh.Priority.PushBack(idx)
	}
}

// EnforcePowerBudget sheds load while draw exceeds generation, last
// activated first, marking each shed slot autooff. When there is headroom
// it replays suspended slots in activation order, stopping at the first
// one that does not fit. Returns the stats after enforcement.
func EnforcePowerBudget(env *Env, sh *Ship) ShipStats {
	st := sh.Stats(env.Cfg)

	if st.Power > st.Gen {
		for st.Power > st.Gen {
			e, ok := sh.Priority.popBack()
			if !ok {
				break
			}
			s := &sh.Slots[e.idx]
			if s.Power == components.PowerOff {
				continue
			}
			st.Power -= float64(s.Power)
			e.power = s.Power
			s.AutoOff = true
			s.AutoOffPower = s.Power
			s.Power = components.PowerOff
			sh.Priority.suspend(e)
			env.Events.Add(Event{Type: EventAutoOff, Slot: e.idx, Fighter: -1, Amount: float64(e.power)})
		}
		return st
	}

	pending := append([]queued(nil), sh.Priority.suspended...)
	for _, e := range pending {
		s := &sh.Slots[e.idx]
		if !s.Alive() || !s.AutoOff {
			sh.Priority.Forget(e.idx)
			s.AutoOff = false
			continue
		}
		if s.AutoCool {
			continue
		}
		need := float64(e.power)
		if st.Power+need > st.Gen {
			break
		}
		s.Power = e.power
		s.AutoOff = false
		sh.Priority.restore(e)
		st.Power += need
		env.Events.Add(Event{Type: EventAutoRestore, Slot: e.idx, Fighter: -1, Amount: need})
	}
	return st
}
