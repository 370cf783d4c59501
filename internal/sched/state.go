// internal/sched/state.go

package sched

// State is where a Ticker is in its lifecycle.
//
//	Created --Start--> Running --(maxTicks done or Stop)--> Completed --Join--> Joined
type State int

const (
	StateCreated State = iota
	StateRunning
	StateCompleted
	StateJoined
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateJoined:
		return "Joined"
	default:
		return "Unknown"
	}
}
