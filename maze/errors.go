package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks malformed static configuration: grids, matrices or requests.
	ErrConfig = errors.New("configuration error")

	// ErrTopology marks a grid whose wall layout the observation model cannot classify.
	ErrTopology = errors.New("topology error")
)

// TopologyError reports a passable cell with an unsupported number of walls.
type TopologyError struct {
	Position CellPosition
	Walls    int
	Terminal bool
}

func (e *TopologyError) Error() string {
	kind := "non-terminal"
	if e.Terminal {
		kind = "terminal"
	}
	return fmt.Sprintf("%s: %s cell %s has %d walls", ErrTopology, kind, e.Position, e.Walls)
}

func (e *TopologyError) Unwrap() error {
	return ErrTopology
}

// configErrorf formats a configuration error that wraps ErrConfig.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}
