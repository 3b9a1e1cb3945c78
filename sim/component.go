package sim

// A Named object has a name.
type Named interface {
	Name() string
}

// Component is the interface the Simulator drives: a registerable entity
// that reacts to ticks and reports when it next needs one.
//
// WakeSources and Links are the reflection-free stand-in for the compile-
// time field walk a non-Go implementation might use to discover a
// component's ports/timers/links: a concrete component type (typically by
// embedding *Behavior, see behavior.go) must enumerate them explicitly.
type Component interface {
	Named

	// Tick is invoked once per scheduling step in which NextWake() equals
	// the simulator's current time, plus once at startup
	// (isStartup=true) and once at shutdown (isShutdown=true).
	// ComponentBase does not implement it; concrete components do
	// (typically generated by Behavior, see behavior.go), and a Behavior
	// with nothing bound gives a Tick that does nothing.
	Tick(sim *Simulator, isStartup, isShutdown bool)

	// NextWake returns the earliest time, across every port and timer
	// this component owns, that it next needs a tick — or NoEvent if it
	// has nothing pending.
	NextWake() SimulationTime

	// WakeSources returns every port and timer this component owns, for
	// the simulator to wire owner back-pointers into at registration.
	WakeSources() []WakeSource

	// Links returns every Link, BroadcastLink, and BatchLink this
	// component owns, for the simulator to wire a clock reference into at
	// registration.
	Links() []Linker

	self() *ComponentBase
}

// ComponentBase provides the bookkeeping every concrete component needs:
// a name and a back-reference to the simulator it is registered with (set
// at registration, read by Port/Timer/Link via the ComponentBase they are
// wired to).
type ComponentBase struct {
	name string
	sim  *Simulator
}

// NewComponentBase creates a ComponentBase with the given name. Concrete
// component constructors embed the result.
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)
	return &ComponentBase{name: name}
}

// Name returns the component's name.
func (c *ComponentBase) Name() string { return c.name }

// Simulator returns the simulator this component is registered with, or
// nil before registration.
func (c *ComponentBase) Simulator() *Simulator { return c.sim }

// self lets the simulator recover the embedded ComponentBase through the
// Component interface without reflection. Any type embedding
// *ComponentBase promotes this method, satisfying Component's self()
// requirement even though the method itself is unexported and declared
// here in package sim.
func (c *ComponentBase) self() *ComponentBase { return c }
