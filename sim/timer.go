package sim

import "container/heap"

// Timer is a self-scheduled event queue owned by a component: structurally
// a Port combined with a zero-latency self-link, minus the connect step
// (its target is implicitly its owner).
type Timer[M any] struct {
	HookableBase

	name  string
	owner *ComponentBase
	heap  eventHeap[M]
}

// NewTimer creates a Timer not yet owned by any component.
func NewTimer[M any](name string) *Timer[M] {
	NameMustBeValid(name)

	t := &Timer[M]{name: name}
	heap.Init(&t.heap)

	return t
}

// Name returns the timer's name.
func (t *Timer[M]) Name() string { return t.name }

func (t *Timer[M]) bindOwner(c *ComponentBase) { t.owner = c }

// Set schedules msg to fire delay ticks from the current simulation time.
// delay must be > 0.
func (t *Timer[M]) Set(msg M, delay SimulationTime) error {
	if delay <= 0 {
		return ErrInvalidDelay
	}

	if t.owner == nil || t.owner.sim == nil {
		return ErrNotRegistered
	}

	now := t.owner.sim.CurrentTime()
	evt := Event[M]{
		Msg:  msg,
		Time: now + delay,
		seq:  t.owner.sim.nextSeq(),
	}

	heap.Push(&t.heap, evt)

	if t.NumHooks() > 0 {
		t.InvokeHook(HookCtx{
			Domain: t,
			Pos:    HookPosEventEnqueued,
			Item:   msg,
			Now:    evt.Time,
		})
	}

	return nil
}

// PeekTime returns the earliest pending timer event's time, or NoEvent.
func (t *Timer[M]) PeekTime() SimulationTime {
	if len(t.heap) == 0 {
		return NoEvent
	}
	return t.heap[0].Time
}

// drainAt pops and returns every message due exactly at t.
func (t *Timer[M]) drainAt(tm SimulationTime) []M {
	var out []M

	for len(t.heap) > 0 && t.heap[0].Time == tm {
		evt := heap.Pop(&t.heap).(Event[M])
		out = append(out, evt.Msg)

		if t.NumHooks() > 0 {
			t.InvokeHook(HookCtx{
				Domain: t,
				Pos:    HookPosEventDrained,
				Item:   evt.Msg,
				Now:    tm,
			})
		}
	}

	if len(t.heap) > 0 && t.heap[0].Time < tm {
		panic("sim: timer " + t.name + " holds a past-dated event at dispatch")
	}

	return out
}
