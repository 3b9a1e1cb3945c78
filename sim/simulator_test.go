package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Simulator", func() {
	It("starts in the Building state", func() {
		s := NewSimulator(0)
		Expect(s.State()).To(Equal("Building"))
	})

	It("refuses to register the same component twice", func() {
		s := NewSimulator(0)
		c := newCounter("C")
		Expect(s.Register(c)).To(Succeed())
		Expect(s.Register(c)).To(MatchError(ErrAlreadyRegistered))
	})

	It("refuses Register once it has left the Building state", func() {
		s := NewSimulator(0)
		Expect(s.Run()).To(Succeed())

		c := newCounter("Late")
		Expect(s.Register(c)).To(MatchError(ErrWrongState))
	})

	It("refuses a second Run", func() {
		s := NewSimulator(0)
		Expect(s.Run()).To(Succeed())
		Expect(s.Run()).To(HaveOccurred())
	})

	It("runs startup on every component, advances to the earliest pending wake, then shuts down", func() {
		s := NewSimulator(0)
		c := newCounter("C")
		Expect(s.Register(c)).To(Succeed())

		c.Behavior.Startup(func(ctx *TickCtx) {
			c.StartupRan++
			_ = c.T.Set(99, 4)
		})

		Expect(s.Run()).To(Succeed())

		Expect(c.StartupRan).To(Equal(1))
		Expect(c.ShutdownRan).To(Equal(1))
		Expect(c.Got).To(Equal([]int{99}))
		Expect(s.CurrentTime()).To(Equal(SimulationTime(4)))
		Expect(s.State()).To(Equal("Terminated"))
	})

	It("ticks components in registration order within a single step", func() {
		s := NewSimulator(0)

		var order []string

		a := newCounter("A")
		b := newCounter("B")

		a.Behavior.Startup(func(ctx *TickCtx) {
			order = append(order, "A-startup")
			_ = a.T.Set(1, 3)
		})
		b.Behavior.Startup(func(ctx *TickCtx) {
			order = append(order, "B-startup")
			_ = b.T.Set(1, 3)
		})

		Expect(s.Register(a)).To(Succeed())
		Expect(s.Register(b)).To(Succeed())

		Expect(s.Run()).To(Succeed())

		Expect(order).To(Equal([]string{"A-startup", "B-startup"}))
		Expect(a.Got).To(Equal([]int{1}))
		Expect(b.Got).To(Equal([]int{1}))
	})

	It("stops once current_time passes a nonzero quitTime", func() {
		s := NewSimulator(5)
		c := newCounter("C")
		pacer := NewTimer[int]("C.Pacer")
		c.Behavior.Startup(func(ctx *TickCtx) { _ = pacer.Set(1, 3) })
		OnTimer(c.Behavior, pacer, func(ctx *TickCtx, msg int) {
			_ = pacer.Set(1, 3)
		})
		Expect(s.Register(c)).To(Succeed())

		Expect(s.Run()).To(Succeed())

		Expect(s.CurrentTime()).To(BeNumerically(">", SimulationTime(5)))
	})

	It("stops early when Quit is called mid-run", func() {
		s := NewSimulator(0)
		c := newCounter("C")
		pacer := NewTimer[int]("C.Pacer")
		c.Behavior.Startup(func(ctx *TickCtx) { _ = pacer.Set(1, 3) })
		OnTimer(c.Behavior, pacer, func(ctx *TickCtx, msg int) {
			s.Quit()
			_ = pacer.Set(1, 3)
		})
		Expect(s.Register(c)).To(Succeed())

		Expect(s.Run()).To(Succeed())

		Expect(s.CurrentTime()).To(Equal(SimulationTime(3)))
	})
})
