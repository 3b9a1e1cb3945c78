package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Timer", func() {
	var (
		s *Simulator
		t *Timer[int]
	)

	BeforeEach(func() {
		s = NewSimulator(0)
		t = NewTimer[int]("Clock.Pacer")
	})

	It("rejects Set before the timer is owned by a registered component", func() {
		Expect(t.Set(1, 5)).To(MatchError(ErrNotRegistered))
	})

	It("rejects a non-positive delay", func() {
		cb := NewComponentBase("Clock")
		cb.sim = s
		t.bindOwner(cb)

		Expect(t.Set(1, 0)).To(MatchError(ErrInvalidDelay))
		Expect(t.Set(1, -1)).To(MatchError(ErrInvalidDelay))
	})

	It("schedules relative to the owning simulator's current time", func() {
		cb := NewComponentBase("Clock")
		cb.sim = s
		t.bindOwner(cb)

		s.currentTime = 10
		Expect(t.Set(42, 5)).To(Succeed())
		Expect(t.PeekTime()).To(Equal(SimulationTime(15)))

		got := t.drainAt(15)
		Expect(got).To(Equal([]int{42}))
	})
})
