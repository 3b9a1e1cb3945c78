package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeComponent is the minimal Component used to register a bare Port
// without pulling in Behavior, for link/connect invariant tests.
type fakeComponent struct {
	*ComponentBase
	ws []WakeSource
	ls []Linker
}

func newFakeComponent(name string) *fakeComponent {
	return &fakeComponent{ComponentBase: NewComponentBase(name)}
}

func (f *fakeComponent) Tick(*Simulator, bool, bool) {}
func (f *fakeComponent) NextWake() SimulationTime    { return NoEvent }
func (f *fakeComponent) WakeSources() []WakeSource   { return f.ws }
func (f *fakeComponent) Links() []Linker             { return f.ls }

var _ = Describe("Link", func() {
	var (
		s    *Simulator
		port *Port[int]
		dst  *fakeComponent
	)

	BeforeEach(func() {
		s = NewSimulator(0)
		port = NewPort[int]("In")
		dst = newFakeComponent("Dst")
		dst.ws = []WakeSource{port}
		Expect(s.Register(dst)).To(Succeed())
	})

	It("rejects construction with a non-positive latency", func() {
		_, err := NewLink[int](0)
		Expect(err).To(MatchError(ErrInvalidLatency))
	})

	It("refuses to Send before it is connected", func() {
		link, err := NewLink[int](3)
		Expect(err).NotTo(HaveOccurred())

		src := newFakeComponent("Src")
		src.ls = []Linker{link}
		Expect(s.Register(src)).To(Succeed())

		Expect(link.Send(7, 0)).To(MatchError(ErrNotConnected))
	})

	It("delivers at current_time + latency + extraDelay", func() {
		link, err := NewLink[int](3)
		Expect(err).NotTo(HaveOccurred())

		src := newFakeComponent("Src")
		src.ls = []Linker{link}
		Expect(s.Register(src)).To(Succeed())

		Expect(Connect(s, link, port)).To(Succeed())

		s.currentTime = 100
		Expect(link.Send(7, 2)).To(Succeed())
		Expect(port.PeekTime()).To(Equal(SimulationTime(105)))
	})

	It("refuses a second Connect", func() {
		link, err := NewLink[int](1)
		Expect(err).NotTo(HaveOccurred())
		src := newFakeComponent("Src")
		src.ls = []Linker{link}
		Expect(s.Register(src)).To(Succeed())

		Expect(Connect(s, link, port)).To(Succeed())
		Expect(Connect(s, link, port)).To(MatchError(ErrAlreadyConnected))
	})

	It("refuses Connect once the simulator has left the Building state", func() {
		link, err := NewLink[int](1)
		Expect(err).NotTo(HaveOccurred())
		src := newFakeComponent("Src")
		src.ls = []Linker{link}
		Expect(s.Register(src)).To(Succeed())

		s.state = stateRunning
		Expect(Connect(s, link, port)).To(MatchError(ErrWrongState))
	})
})

var _ = Describe("BroadcastLink", func() {
	It("is a silent no-op when Send is called with no bound targets", func() {
		s := NewSimulator(0)
		link, err := NewBroadcastLink[int](1)
		Expect(err).NotTo(HaveOccurred())

		src := newFakeComponent("Src")
		src.ls = []Linker{link}
		Expect(s.Register(src)).To(Succeed())

		Expect(link.Send(9, 0)).To(Succeed())
	})

	It("delivers an identical-time event to every bound target", func() {
		s := NewSimulator(0)
		link, err := NewBroadcastLink[int](2)
		Expect(err).NotTo(HaveOccurred())

		src := newFakeComponent("Src")
		src.ls = []Linker{link}
		Expect(s.Register(src)).To(Succeed())

		p1 := NewPort[int]("A")
		p2 := NewPort[int]("B")
		d1 := newFakeComponent("D1")
		d1.ws = []WakeSource{p1}
		d2 := newFakeComponent("D2")
		d2.ws = []WakeSource{p2}
		Expect(s.Register(d1)).To(Succeed())
		Expect(s.Register(d2)).To(Succeed())

		Expect(ConnectBroadcast(s, link, p1)).To(Succeed())
		Expect(ConnectBroadcast(s, link, p2)).To(Succeed())

		Expect(link.Send(9, 0)).To(Succeed())
		Expect(p1.PeekTime()).To(Equal(SimulationTime(2)))
		Expect(p2.PeekTime()).To(Equal(SimulationTime(2)))
	})
})
