package twi

// State of the master state machine.
type State uint8

const (
	Idle State = iota
	StartRequested
	Addressing
	DataTransfer
	StopRequested
	Faulted // arbitration lost, bus error or timeout; the next transfer starts over
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case StartRequested:
		return "start_requested"
	case Addressing:
		return "addressing"
	case DataTransfer:
		return "data_transfer"
	case StopRequested:
		return "stop_requested"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Hook observes state transitions. It runs synchronously inside the bus
// operation and must not call back into the bus.
type Hook func(from, to State)
