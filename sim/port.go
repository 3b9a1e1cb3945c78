package sim

import "container/heap"

// WakeSource is implemented by Port[M] and Timer[M]: anything holding a
// time-ordered frontier of pending events that can wake its owning
// component. It is the explicit, reflection-free stand-in for the
// structural field walk that a non-Go implementation might use to discover
// a component's ports and timers (see DESIGN.md).
type WakeSource interface {
	// PeekTime returns the earliest pending event's time, or NoEvent.
	PeekTime() SimulationTime

	bindOwner(c *ComponentBase)
}

// Port is a component's inbound, time-ordered queue of messages of type M.
// A Port is constructed independently of its owner and is wired to it at
// Simulator.Register time; it is shared between the owning component
// (reader) and any Link bound to it (writer).
type Port[M any] struct {
	HookableBase

	name  string
	owner *ComponentBase
	heap  eventHeap[M]
}

// NewPort creates a Port not yet owned by any component.
func NewPort[M any](name string) *Port[M] {
	NameMustBeValid(name)

	p := &Port[M]{name: name}
	heap.Init(&p.heap)

	return p
}

// Name returns the port's name.
func (p *Port[M]) Name() string { return p.name }

// Owner returns the component this port was wired to at registration, or
// nil if the port has not yet been registered.
func (p *Port[M]) Owner() *ComponentBase { return p.owner }

func (p *Port[M]) bindOwner(c *ComponentBase) { p.owner = c }

// push inserts evt in time order. Called by a bound Link's Send.
func (p *Port[M]) push(evt Event[M]) {
	heap.Push(&p.heap, evt)

	if p.NumHooks() > 0 {
		p.InvokeHook(HookCtx{
			Domain: p,
			Pos:    HookPosEventEnqueued,
			Item:   evt.Msg,
			Now:    evt.Time,
		})
	}
}

// PeekTime returns the earliest pending event's time, or NoEvent if the
// port is empty.
func (p *Port[M]) PeekTime() SimulationTime {
	if len(p.heap) == 0 {
		return NoEvent
	}
	return p.heap[0].Time
}

// drainAt pops and returns, in heap order (earliest first, FIFO among
// ties), every message whose time equals t. It asserts that no pending
// event has a time strictly before t, matching the spec's dispatch
// invariant — a violation indicates an engine bug, not a runtime failure.
func (p *Port[M]) drainAt(t SimulationTime) []M {
	var out []M

	for len(p.heap) > 0 && p.heap[0].Time == t {
		evt := heap.Pop(&p.heap).(Event[M])
		out = append(out, evt.Msg)

		if p.NumHooks() > 0 {
			p.InvokeHook(HookCtx{
				Domain: p,
				Pos:    HookPosEventDrained,
				Item:   evt.Msg,
				Now:    t,
			})
		}
	}

	if len(p.heap) > 0 && p.heap[0].Time < t {
		panic("sim: port " + p.name + " holds a past-dated event at dispatch")
	}

	return out
}
