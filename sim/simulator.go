package sim

import "fmt"

type simState int

const (
	stateBuilding simState = iota
	stateRunning
	stateTerminated
)

func (s simState) String() string {
	switch s {
	case stateBuilding:
		return "Building"
	case stateRunning:
		return "Running"
	case stateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Simulator owns the virtual clock, the registered component set, and the
// per-tick scheduling loop. It moves once, in order, through the states
// Building -> Running -> Terminated.
type Simulator struct {
	HookableBase

	currentTime SimulationTime
	nextEvent   SimulationTime

	components []Component
	registered map[Component]bool

	quitTime      SimulationTime
	quitRequested bool

	state simState
	seq   uint64
}

// NewSimulator creates a Simulator in the Building state. quitTime == 0
// means "run until quiescent"; otherwise the run loop stops once
// current_time exceeds quitTime.
func NewSimulator(quitTime SimulationTime) *Simulator {
	return &Simulator{
		nextEvent:  NoEvent,
		quitTime:   quitTime,
		registered: make(map[Component]bool),
	}
}

// CurrentTime returns the simulator's current virtual time.
func (s *Simulator) CurrentTime() SimulationTime { return s.currentTime }

// State returns the simulator's lifecycle state (Building/Running/
// Terminated), mainly for diagnostics and the monitor HTTP endpoint.
func (s *Simulator) State() string { return s.state.String() }

func (s *Simulator) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// Register appends c to the registered sequence (registration order is
// preserved and drives tick order) and wires back-pointers into every
// port/timer/link c reports via WakeSources/Links. Register is only valid
// in the Building state and may only be called once per component.
func (s *Simulator) Register(c Component) error {
	if s.state != stateBuilding {
		return ErrWrongState
	}
	if s.registered[c] {
		return ErrAlreadyRegistered
	}

	cb := c.self()
	cb.sim = s

	for _, l := range c.Links() {
		l.bindSimulator(s)
	}
	for _, ws := range c.WakeSources() {
		ws.bindOwner(cb)
		if h, ok := ws.(Hookable); ok {
			for _, hook := range s.hooks {
				h.AcceptHook(hook)
			}
		}
	}

	s.components = append(s.components, c)
	s.registered[c] = true

	return nil
}

// AcceptHook registers hook for tick-boundary events on the simulator
// itself, and also propagates it to every port and timer owned by every
// component registered so far, so a single call wires both tick-level
// hooks (TickLogger) and message-level hooks (MessageLogger, a trace
// Recorder) regardless of registration order. Components registered after
// this call pick up every previously accepted hook in Register.
func (s *Simulator) AcceptHook(hook Hook) {
	s.HookableBase.AcceptHook(hook)

	for _, c := range s.components {
		for _, ws := range c.WakeSources() {
			if h, ok := ws.(Hookable); ok {
				h.AcceptHook(hook)
			}
		}
	}
}

// Quit requests that Run stop after the current tick step completes.
func (s *Simulator) Quit() {
	s.quitRequested = true
}

// Run fires every component's startup tick, then repeatedly advances the
// clock to the earliest pending wake-up and ticks every due component (in
// registration order, each exactly once per step), until quiescent, past
// quitTime, or Quit is called — then fires every component's shutdown tick
// and returns.
func (s *Simulator) Run() error {
	if s.state != stateBuilding {
		return fmt.Errorf("%w: run called from state %s", ErrWrongState, s.state)
	}

	s.state = stateRunning

	for _, c := range s.components {
		s.tick(c, true, false)
	}
	s.recomputeNextEvent()

	for s.keepGoing() {
		s.currentTime = s.nextEvent

		for _, c := range s.components {
			if c.NextWake() == s.currentTime {
				s.tick(c, false, false)
			}
		}

		s.recomputeNextEvent()
	}

	for _, c := range s.components {
		s.tick(c, false, true)
	}

	s.state = stateTerminated

	return nil
}

func (s *Simulator) tick(c Component, isStartup, isShutdown bool) {
	if s.NumHooks() > 0 {
		s.InvokeHook(HookCtx{Domain: s, Pos: HookPosBeforeTick, Item: c, Now: s.currentTime})
	}

	c.Tick(s, isStartup, isShutdown)

	if s.NumHooks() > 0 {
		s.InvokeHook(HookCtx{Domain: s, Pos: HookPosAfterTick, Item: c, Now: s.currentTime})
	}
}

func (s *Simulator) keepGoing() bool {
	if s.quitRequested {
		return false
	}
	if s.nextEvent == NoEvent {
		return false
	}
	if s.quitTime != 0 && s.currentTime > s.quitTime {
		return false
	}
	return true
}

func (s *Simulator) recomputeNextEvent() {
	next := NoEvent

	for _, c := range s.components {
		t := c.NextWake()
		if t == NoEvent {
			continue
		}
		if next == NoEvent || t < next {
			next = t
		}
	}

	s.nextEvent = next
}
