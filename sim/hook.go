package sim

// HookPos names a site in the engine where hooks can be invoked.
type HookPos struct {
	Name string
}

// HookCtx carries the information about a hook invocation site.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Now    SimulationTime
}

// Hookable is anything that accepts hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
}

// Hook is invoked by a Hookable object at one or more HookPos sites.
type Hook interface {
	Func(ctx HookCtx)
}

// HookPosEventEnqueued fires when an event is pushed onto a port or timer.
var HookPosEventEnqueued = &HookPos{Name: "Event Enqueued"}

// HookPosEventDrained fires once per message as a port or timer drains it.
var HookPosEventDrained = &HookPos{Name: "Event Drained"}

// HookPosBeforeTick fires immediately before a component's Tick is invoked.
var HookPosBeforeTick = &HookPos{Name: "Before Tick"}

// HookPosAfterTick fires immediately after a component's Tick returns.
var HookPosAfterTick = &HookPos{Name: "After Tick"}

// HookableBase provides a default Hookable implementation by embedding.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns how many hooks are registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook runs every registered hook with ctx.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
