package sim

// Event pairs a message with the simulation time it is due. Events are
// ordered by Time ascending; among equal times, seq (an insertion-order
// sequence number assigned by the simulator) breaks the tie, giving FIFO
// order among equal-time events enqueued at the same port or timer.
type Event[M any] struct {
	Msg  M
	Time SimulationTime

	seq uint64
}

// eventHeap is a container/heap.Interface over Event[M], ordered by
// (Time, seq).
type eventHeap[M any] []Event[M]

func (h eventHeap[M]) Len() int { return len(h) }

func (h eventHeap[M]) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap[M]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap[M]) Push(x any) {
	*h = append(*h, x.(Event[M]))
}

func (h *eventHeap[M]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
