package sim

import (
	"container/heap"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("eventHeap", func() {
	It("orders by time, then by insertion sequence", func() {
		h := &eventHeap[string]{}
		heap.Init(h)

		heap.Push(h, Event[string]{Msg: "b", Time: 5, seq: 2})
		heap.Push(h, Event[string]{Msg: "a", Time: 5, seq: 1})
		heap.Push(h, Event[string]{Msg: "c", Time: 3, seq: 3})

		first := heap.Pop(h).(Event[string])
		Expect(first.Msg).To(Equal("c"))

		second := heap.Pop(h).(Event[string])
		Expect(second.Msg).To(Equal("a"))

		third := heap.Pop(h).(Event[string])
		Expect(third.Msg).To(Equal("b"))
	})
})
