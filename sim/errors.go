package sim

import "errors"

// Error kinds returned by the simulator's public API. They are synchronous,
// fatal to the offending call, and never retried by the engine.
var (
	// ErrAlreadyRegistered is returned when a component is registered with
	// a simulator twice.
	ErrAlreadyRegistered = errors.New("sim: component already registered")

	// ErrNotRegistered is returned when connect references a port or link
	// whose owning component has not been registered with the simulator.
	ErrNotRegistered = errors.New("sim: component not registered with this simulator")

	// ErrSimulatorMismatch is returned when connect is asked to bind a
	// link and a port that belong to different simulators.
	ErrSimulatorMismatch = errors.New("sim: link and port belong to different simulators")

	// ErrAlreadyConnected is returned when a unicast link is connected a
	// second time.
	ErrAlreadyConnected = errors.New("sim: link is already connected to a port")

	// ErrNotConnected is returned by Send on a unicast link with no bound
	// port.
	ErrNotConnected = errors.New("sim: link has no bound port")

	// ErrInvalidLatency is returned when a link is constructed with a
	// latency <= 0.
	ErrInvalidLatency = errors.New("sim: latency must be >= 1")

	// ErrInvalidDelay is returned when Timer.Set is given a delay <= 0, or
	// Send is given a negative extra delay.
	ErrInvalidDelay = errors.New("sim: delay must be > 0")

	// ErrWrongState is returned when register/connect is attempted outside
	// the Building state, or run is attempted on a non-Building simulator.
	ErrWrongState = errors.New("sim: operation not valid in the simulator's current state")
)
