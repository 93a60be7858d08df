// Package belief tracks which maze cell an agent occupies.
//
// A Model combines a maze with two confusion matrices: the action model (the
// actuator may move the agent in a different direction than intended) and the
// observation model (the agent's wall sensor may miscount). Filter runs the
// discrete Bayes recursion over a sequence of (action, observation) pairs.
//
// A Model is immutable once built and may be shared by any number of
// concurrent filters.
package belief

import (
	"math"

	"github.com/beka-birhanu/vinom-belief/maze"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const stochasticTolerance = 1e-9

// WallClass selects the row of the observation-confusion matrix for a state.
type WallClass int

const (
	OneWall WallClass = iota
	TwoWalls
	TerminalClass
)

// NumWallClasses is the number of rows an observation-confusion matrix must have.
const NumWallClasses = 3

// Observation symbols of the standard three-symbol sensor.
const (
	ObservedOneWall = iota
	ObservedTwoWalls
	ObservedTerminal
)

// Config holds the static stochastic models of the agent.
type Config struct {
	// ActionConfusion[intended][actual] is the probability that the actuator
	// performs actual when intended was requested. Indexed by maze.Direction.
	ActionConfusion [][]float64 `json:"action_confusion" bson:"actionConfusion"`

	// ObservationConfusion[class][e] is the probability of observing e in a
	// state of the given WallClass.
	ObservationConfusion [][]float64 `json:"observation_confusion" bson:"observationConfusion"`
}

// Model is the transition and observation model of a maze.
type Model struct {
	maze         *maze.Maze
	transitions  [maze.NumDirections]*mat.Dense // transitions[a].At(next, s) = P(next | s, a)
	observations *mat.Dense                     // observations.At(s, e) = P(e | s)
}

// NewModel validates cfg and derives the transition and observation model of m.
func NewModel(m *maze.Maze, cfg Config) (*Model, error) {
	if m == nil {
		return nil, configErrorf("maze is required")
	}
	if err := validateActionConfusion(cfg.ActionConfusion); err != nil {
		return nil, err
	}
	if err := validateObservationConfusion(cfg.ObservationConfusion); err != nil {
		return nil, err
	}

	model := &Model{maze: m}
	model.buildTransitions(cfg.ActionConfusion)
	if err := model.buildObservations(cfg.ObservationConfusion); err != nil {
		return nil, err
	}
	return model, nil
}

// buildTransitions fills one N×N table per actual action.
//
// For a non-terminal state every intended direction i moves the agent to its
// neighbor, or leaves it in place when blocked, and contributes
// actions[i][a] to the table of each actual action a. Terminal states absorb.
func (m *Model) buildTransitions(actions [][]float64) {
	n := m.maze.NumStates()
	for a := range m.transitions {
		m.transitions[a] = mat.NewDense(n, n, nil)
	}

	for _, s := range m.maze.States() {
		if s.Terminal() {
			for _, t := range m.transitions {
				t.Set(s.ID, s.ID, 1)
			}
			continue
		}

		for intended := maze.Direction(0); intended < maze.NumDirections; intended++ {
			target, ok := s.Neighbor(intended)
			if !ok {
				target = s.ID
			}
			for a, t := range m.transitions {
				t.Set(target, s.ID, t.At(target, s.ID)+actions[intended][a])
			}
		}
	}
}

// buildObservations assigns each state the confusion row of its wall class.
func (m *Model) buildObservations(observables [][]float64) error {
	m.observations = mat.NewDense(m.maze.NumStates(), len(observables[0]), nil)
	for _, s := range m.maze.States() {
		class, err := Classify(s)
		if err != nil {
			return err
		}
		m.observations.SetRow(s.ID, observables[class])
	}
	return nil
}

// Classify returns the wall class of s.
func Classify(s maze.State) (WallClass, error) {
	if s.Terminal() {
		return TerminalClass, nil
	}
	switch walls := s.Walls(); walls {
	case 1:
		return OneWall, nil
	case 2:
		return TwoWalls, nil
	default:
		return 0, &maze.TopologyError{Position: s.Position, Walls: walls}
	}
}

// Maze returns the maze the model was built for.
func (m *Model) Maze() *maze.Maze {
	return m.maze
}

// NumStates returns the size of the state space.
func (m *Model) NumStates() int {
	return m.maze.NumStates()
}

// NumActions returns the number of actions.
func (m *Model) NumActions() int {
	return maze.NumDirections
}

// NumObservations returns the number of observation symbols.
func (m *Model) NumObservations() int {
	_, c := m.observations.Dims()
	return c
}

// Transition returns P(next | from, a).
func (m *Model) Transition(next, from int, a maze.Direction) float64 {
	return m.transitions[a].At(next, from)
}

// Observation returns P(e | s).
func (m *Model) Observation(s, e int) float64 {
	return m.observations.At(s, e)
}

func validateActionConfusion(actions [][]float64) error {
	if len(actions) != maze.NumDirections {
		return configErrorf("action-confusion matrix has %d rows, want %d", len(actions), maze.NumDirections)
	}
	if err := validateStochasticRows("action-confusion", actions, maze.NumDirections); err != nil {
		return err
	}

	// Each actual-action table sums a column over all intended actions, so the
	// columns must be stochastic too.
	col := make([]float64, maze.NumDirections)
	for a := 0; a < maze.NumDirections; a++ {
		for i := range actions {
			col[i] = actions[i][a]
		}
		if sum := floats.Sum(col); !scalar.EqualWithinAbs(sum, 1, stochasticTolerance) {
			return configErrorf("action-confusion column %s sums to %v, want 1", maze.Direction(a), sum)
		}
	}
	return nil
}

func validateObservationConfusion(observables [][]float64) error {
	if len(observables) != NumWallClasses {
		return configErrorf("observation-confusion matrix has %d rows, want %d", len(observables), NumWallClasses)
	}
	if len(observables[0]) == 0 {
		return configErrorf("observation-confusion matrix has no observation symbols")
	}
	return validateStochasticRows("observation-confusion", observables, len(observables[0]))
}

// validateStochasticRows checks that every row has width probabilities summing to 1.
func validateStochasticRows(name string, rows [][]float64, width int) error {
	for r, row := range rows {
		if len(row) != width {
			return configErrorf("%s row %d has %d columns, want %d", name, r, len(row), width)
		}
		for c, p := range row {
			if math.IsNaN(p) || p < 0 || p > 1 {
				return configErrorf("%s entry [%d][%d] = %v is not a probability", name, r, c, p)
			}
		}
		if sum := floats.Sum(row); !scalar.EqualWithinAbs(sum, 1, stochasticTolerance) {
			return configErrorf("%s row %d sums to %v, want 1", name, r, sum)
		}
	}
	return nil
}
