package rules

// CellState is the binary state of a cell. Dead is 0 and Alive is 1 so states can be summed.
type CellState uint8

const (
	Dead CellState = iota
	Alive
)

// Toggle returns the opposite state
func (c CellState) Toggle() CellState {
	if c == Alive {
		return Dead
	}
	return Alive
}

func (c CellState) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}

func stateOf(alive bool) CellState {
	if alive {
		return Alive
	}
	return Dead
}
