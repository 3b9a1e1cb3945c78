package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// counter is a minimal component built directly on Behavior, used to probe
// NextWake/Tick dispatch without an example package.
type counter struct {
	*ComponentBase
	*Behavior

	In          *Port[int]
	T           *Timer[int]
	Got         []int
	StartupRan  int
	ShutdownRan int
}

func newCounter(name string) *counter {
	c := &counter{
		ComponentBase: NewComponentBase(name),
		Behavior:      NewBehavior(),
		In:            NewPort[int](name + ".In"),
		T:             NewTimer[int](name + ".T"),
	}

	c.Behavior.Startup(func(ctx *TickCtx) { c.StartupRan++ })
	c.Behavior.Shutdown(func(ctx *TickCtx) { c.ShutdownRan++ })
	OnMessage(c.Behavior, c.In, func(ctx *TickCtx, msg int) { c.Got = append(c.Got, msg) })
	OnTimer(c.Behavior, c.T, func(ctx *TickCtx, msg int) { c.Got = append(c.Got, msg) })

	return c
}

var _ = Describe("Behavior", func() {
	It("reports NoEvent with nothing bound pending", func() {
		c := newCounter("Idle")
		Expect(c.NextWake()).To(Equal(NoEvent))
	})

	It("takes the minimum PeekTime across every bound wake source", func() {
		c := newCounter("Busy")
		c.In.push(Event[int]{Msg: 1, Time: 20, seq: 1})
		c.T.heap = append(c.T.heap, Event[int]{Msg: 2, Time: 7, seq: 2})

		Expect(c.NextWake()).To(Equal(SimulationTime(7)))
	})

	It("only runs the startup body on an isStartup tick", func() {
		c := newCounter("C")
		c.Tick(NewSimulator(0), true, false)
		Expect(c.StartupRan).To(Equal(1))
		Expect(c.ShutdownRan).To(Equal(0))
	})

	It("only runs the shutdown body on an isShutdown tick", func() {
		c := newCounter("C")
		c.Tick(NewSimulator(0), false, true)
		Expect(c.ShutdownRan).To(Equal(1))
		Expect(c.StartupRan).To(Equal(0))
	})

	It("drains every due port and timer on a regular tick, in bind order", func() {
		s := NewSimulator(0)
		c := newCounter("C")
		Expect(s.Register(c)).To(Succeed())

		s.currentTime = 5
		c.In.push(Event[int]{Msg: 100, Time: 5, seq: 1})
		_ = c.T.Set(200, 0 + 1)
		c.T.heap[0] = Event[int]{Msg: 200, Time: 5, seq: 2}

		c.Tick(s, false, false)
		Expect(c.Got).To(Equal([]int{100, 200}))
	})
})
