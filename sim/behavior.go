package sim

// TickCtx is the scope exposed to a behavior body: the simulator, aliased
// as Sim so a handler can consult CurrentTime, and Now, a local snapshot of
// the current time taken once per Tick so that nothing mid-tick (there is
// nothing, since Send always has latency >= 1, but the binding layer stays
// defensive about it) can change which messages are considered due.
type TickCtx struct {
	Sim *Simulator
	Now SimulationTime
}

// Behavior is the declarative binding layer: for a concrete component type,
// it generates both the NextWake query and the Tick body from a set of
// startup/shutdown hooks and per-port/per-timer message handlers, the way
// the teacher's TickScheduler+Ticker pair generates a tick body from a
// user-supplied Ticker.Tick — generalized here from a Freq-driven
// reschedule loop to the spec's integer-tick, live-recomputed next_wake
// model (see DESIGN.md).
//
// A concrete component embeds both *ComponentBase (identity, simulator
// back-reference) and *Behavior (Tick/NextWake/WakeSources/Links), e.g.:
//
//	type Pinger struct {
//		*sim.ComponentBase
//		*sim.Behavior
//		Out *sim.Link[PingMsg]
//	}
//
// Because Go methods cannot introduce new type parameters, the per-port and
// per-timer bindings are free functions (OnMessage, OnTimer) rather than
// methods on Behavior.
type Behavior struct {
	startup  func(ctx *TickCtx)
	shutdown func(ctx *TickCtx)

	wakeSources []WakeSource
	links       []Linker
	drains      []func(ctx *TickCtx)
}

// NewBehavior creates an empty Behavior. Bind it with Startup, Shutdown,
// OnMessage, OnTimer, and BindLink/BindBroadcastLink/BindBatchLink.
func NewBehavior() *Behavior {
	return &Behavior{}
}

// Startup registers a body that runs exactly once, only when isStartup is
// true. Startup does not consume messages.
func (b *Behavior) Startup(fn func(ctx *TickCtx)) *Behavior {
	b.startup = fn
	return b
}

// Shutdown registers a body that runs exactly once, only when isShutdown is
// true. Shutdown does not consume messages.
func (b *Behavior) Shutdown(fn func(ctx *TickCtx)) *Behavior {
	b.shutdown = fn
	return b
}

// OnMessage binds port so that, on every non-startup/non-shutdown tick, fn
// is called once per message whose timestamp equals the current time, in
// heap order (earliest first, FIFO among ties). It also registers port as a
// WakeSource so the component's NextWake reflects it. If the same port is
// bound more than once, the first binding drains the due messages and later
// bindings receive none.
func OnMessage[M any](b *Behavior, port *Port[M], fn func(ctx *TickCtx, msg M)) *Behavior {
	b.wakeSources = append(b.wakeSources, port)
	b.drains = append(b.drains, func(ctx *TickCtx) {
		for _, msg := range port.drainAt(ctx.Now) {
			fn(ctx, msg)
		}
	})

	return b
}

// OnTimer binds timer exactly like OnMessage binds a port.
func OnTimer[M any](b *Behavior, timer *Timer[M], fn func(ctx *TickCtx, msg M)) *Behavior {
	b.wakeSources = append(b.wakeSources, timer)
	b.drains = append(b.drains, func(ctx *TickCtx) {
		for _, msg := range timer.drainAt(ctx.Now) {
			fn(ctx, msg)
		}
	})

	return b
}

// BindLink registers link so the simulator wires a clock reference into it
// at registration.
func BindLink[M any](b *Behavior, link *Link[M]) *Behavior {
	b.links = append(b.links, link)
	return b
}

// BindBroadcastLink registers a BroadcastLink the same way BindLink does.
func BindBroadcastLink[M any](b *Behavior, link *BroadcastLink[M]) *Behavior {
	b.links = append(b.links, link)
	return b
}

// BindBatchLink registers a BatchLink the same way BindLink does.
func BindBatchLink[M any](b *Behavior, link *BatchLink[M]) *Behavior {
	b.links = append(b.links, link)
	return b
}

// WakeSources implements part of Component.
func (b *Behavior) WakeSources() []WakeSource { return b.wakeSources }

// Links implements part of Component.
func (b *Behavior) Links() []Linker { return b.links }

// NextWake implements part of Component: the minimum PeekTime across every
// bound port and timer, or NoEvent if none are pending. It is recomputed
// live on every call rather than cached, which trivially satisfies the
// invariant that next_event always equals that minimum.
func (b *Behavior) NextWake() SimulationTime {
	next := NoEvent

	for _, ws := range b.wakeSources {
		t := ws.PeekTime()
		if t == NoEvent {
			continue
		}
		if next == NoEvent || t < next {
			next = t
		}
	}

	return next
}

// Tick implements part of Component: on startup/shutdown it runs the
// matching hook only; otherwise it drains every bound port and timer whose
// earliest event is due at the current time, dispatching each message to
// its handler in turn.
func (b *Behavior) Tick(s *Simulator, isStartup, isShutdown bool) {
	ctx := &TickCtx{Sim: s, Now: s.CurrentTime()}

	switch {
	case isStartup:
		if b.startup != nil {
			b.startup(ctx)
		}
	case isShutdown:
		if b.shutdown != nil {
			b.shutdown(ctx)
		}
	default:
		for _, drain := range b.drains {
			drain(ctx)
		}
	}
}
