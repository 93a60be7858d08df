package belief

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-belief/maze"
)

// ErrDegenerateEvidence marks an observation that has zero likelihood under the predicted belief.
var ErrDegenerateEvidence = errors.New("degenerate evidence")

// DegenerateEvidenceError reports the filter step whose normalization constant was zero.
type DegenerateEvidenceError struct {
	Step        int // 1-based index of the failing (action, observation) pair
	Action      maze.Direction
	Observation int
}

func (e *DegenerateEvidenceError) Error() string {
	return fmt.Sprintf("%s: step %d: observation %d has zero likelihood after action %s",
		ErrDegenerateEvidence, e.Step, e.Observation, e.Action)
}

func (e *DegenerateEvidenceError) Unwrap() error {
	return ErrDegenerateEvidence
}

// configErrorf formats a configuration error that wraps maze.ErrConfig.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", maze.ErrConfig, fmt.Sprintf(format, args...))
}
