package sim

// SimulationTime is a tick count in the simulated timeline. The engine only
// requires that it be monotone and addable; what one tick represents is left
// to the model.
type SimulationTime int64

// NoEvent is the sentinel meaning "no event pending."
const NoEvent SimulationTime = -1
