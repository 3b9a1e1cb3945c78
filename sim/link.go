package sim

// Linker is implemented by Link, BroadcastLink, and BatchLink: anything
// that needs the simulator's clock to turn a Send into an arrival time, and
// so must be wired to the simulator at registration.
type Linker interface {
	// Latency returns the link's base per-message delay.
	Latency() SimulationTime

	bindSimulator(s *Simulator)
}

// unicastLink holds the state shared by Link and BatchLink: one optional
// bound target port, a fixed latency, and the owning simulator (needed to
// read the current time on Send).
type unicastLink[M any] struct {
	latency   SimulationTime
	sim       *Simulator
	target    *Port[M]
	connected bool
}

func (l *unicastLink[M]) Latency() SimulationTime { return l.latency }

func (l *unicastLink[M]) bindSimulator(s *Simulator) { l.sim = s }

func (l *unicastLink[M]) connect(s *Simulator, port *Port[M]) error {
	if s.state != stateBuilding {
		return ErrWrongState
	}
	if l.sim == nil {
		return ErrNotRegistered
	}
	if l.sim != s {
		return ErrSimulatorMismatch
	}
	if port.owner == nil {
		return ErrNotRegistered
	}
	if port.owner.sim != s {
		return ErrSimulatorMismatch
	}
	if l.connected {
		return ErrAlreadyConnected
	}

	l.target = port
	l.connected = true

	return nil
}

func (l *unicastLink[M]) send(msg M, extraDelay SimulationTime) error {
	if extraDelay < 0 {
		return ErrInvalidDelay
	}
	if !l.connected {
		return ErrNotConnected
	}

	now := l.sim.CurrentTime()
	total := l.latency + extraDelay

	l.target.push(Event[M]{
		Msg:  msg,
		Time: now + total,
		seq:  l.sim.nextSeq(),
	})

	return nil
}

// Link is a unicast outbound handle: it is bound to exactly one Port before
// any Send, and rebinding it is an error.
type Link[M any] struct {
	unicastLink[M]
}

// NewLink creates an unconnected Link with the given base latency, which
// must be >= 1.
func NewLink[M any](latency SimulationTime) (*Link[M], error) {
	if latency <= 0 {
		return nil, ErrInvalidLatency
	}

	return &Link[M]{unicastLink[M]{latency: latency}}, nil
}

// Send enqueues msg onto the bound port at current_time + latency +
// extraDelay. extraDelay must be >= 0. Returns ErrNotConnected if the link
// has no bound port.
func (l *Link[M]) Send(msg M, extraDelay SimulationTime) error {
	return l.send(msg, extraDelay)
}

// Connect binds link to port. Both must belong to sim and already be
// registered; link must not already be connected.
func Connect[M any](s *Simulator, link *Link[M], port *Port[M]) error {
	return link.connect(s, port)
}

// BatchLink is a unicast link whose latency is engine-chosen (currently 1),
// reserved so a future parallel scheduler can widen it for coarser metadata
// traffic without changing the API.
type BatchLink[M any] struct {
	unicastLink[M]
}

// NewBatchLink creates an unconnected BatchLink.
func NewBatchLink[M any]() *BatchLink[M] {
	return &BatchLink[M]{unicastLink[M]{latency: 1}}
}

// Send behaves exactly like Link.Send.
func (l *BatchLink[M]) Send(msg M, extraDelay SimulationTime) error {
	return l.send(msg, extraDelay)
}

// ConnectBatch binds a BatchLink to its one target port.
func ConnectBatch[M any](s *Simulator, link *BatchLink[M], port *Port[M]) error {
	return link.connect(s, port)
}

// BroadcastLink is an outbound handle bound to zero or more target ports.
// Unlike Link, sending on an unconnected BroadcastLink is not an error — it
// is a silent no-op, matching the spec's documented asymmetry.
type BroadcastLink[M any] struct {
	latency SimulationTime
	sim     *Simulator
	targets []*Port[M]
}

// NewBroadcastLink creates a BroadcastLink with the given base latency
// (>= 1) and no target ports.
func NewBroadcastLink[M any](latency SimulationTime) (*BroadcastLink[M], error) {
	if latency <= 0 {
		return nil, ErrInvalidLatency
	}

	return &BroadcastLink[M]{latency: latency}, nil
}

// Latency returns the link's base latency.
func (l *BroadcastLink[M]) Latency() SimulationTime { return l.latency }

func (l *BroadcastLink[M]) bindSimulator(s *Simulator) { l.sim = s }

// Send enqueues the same event, with identical arrival time, on every bound
// port. The message is not copied: it is logically shared across the
// fan-out and must be treated as immutable by receivers after Send returns.
func (l *BroadcastLink[M]) Send(msg M, extraDelay SimulationTime) error {
	if extraDelay < 0 {
		return ErrInvalidDelay
	}
	if len(l.targets) == 0 {
		return nil
	}

	now := l.sim.CurrentTime()
	evt := Event[M]{
		Msg:  msg,
		Time: now + l.latency + extraDelay,
		seq:  l.sim.nextSeq(),
	}

	for _, p := range l.targets {
		p.push(evt)
	}

	return nil
}

// ConnectBroadcast appends port to link's target list. Target lists only
// grow during the Building state.
func ConnectBroadcast[M any](s *Simulator, link *BroadcastLink[M], port *Port[M]) error {
	if s.state != stateBuilding {
		return ErrWrongState
	}
	if link.sim == nil {
		return ErrNotRegistered
	}
	if link.sim != s {
		return ErrSimulatorMismatch
	}
	if port.owner == nil {
		return ErrNotRegistered
	}
	if port.owner.sim != s {
		return ErrSimulatorMismatch
	}

	link.targets = append(link.targets, port)

	return nil
}
