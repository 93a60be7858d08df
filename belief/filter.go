package belief

import (
	"math"

	"github.com/beka-birhanu/vinom-belief/maze"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Filter holds the belief of a single tracking run.
// It is not safe for concurrent use; the Model it reads from is.
type Filter struct {
	model  *Model
	belief *mat.VecDense
	step   int
}

// NewFilter projects the sparse initial belief onto the model's states.
// Wall cells must be absent or zero and the probabilities must sum to 1.
func NewFilter(model *Model, initial map[maze.CellPosition]float64) (*Filter, error) {
	if model == nil {
		return nil, configErrorf("model is required")
	}

	m := model.Maze()
	b := make([]float64, m.NumStates())
	for pos, p := range initial {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, configErrorf("initial belief at %s = %v is not a probability", pos, p)
		}
		if !m.InBounds(pos) {
			return nil, configErrorf("initial belief at %s is outside the %dx%d grid", pos, m.Width, m.Height)
		}
		id, ok := m.StateID(pos)
		if !ok {
			if p != 0 {
				return nil, configErrorf("initial belief places %v on wall cell %s", p, pos)
			}
			continue
		}
		b[id] = p
	}

	if sum := floats.Sum(b); !scalar.EqualWithinAbs(sum, 1, stochasticTolerance) {
		return nil, configErrorf("initial belief sums to %v, want 1", sum)
	}

	return &Filter{model: model, belief: mat.NewVecDense(len(b), b)}, nil
}

// Step advances the belief by one (action, observation) pair:
//
//	b'(s') = alpha * P(e | s') * sum_s P(s' | s, a) * b(s)
//
// The belief is left untouched when an error is returned.
func (f *Filter) Step(action maze.Direction, observation int) error {
	if action < 0 || int(action) >= f.model.NumActions() {
		return configErrorf("step %d: action %d out of range", f.step+1, int(action))
	}
	if observation < 0 || observation >= f.model.NumObservations() {
		return configErrorf("step %d: observation %d out of range", f.step+1, observation)
	}

	raw := mat.NewVecDense(f.model.NumStates(), nil)
	raw.MulVec(f.model.transitions[action], f.belief)
	raw.MulElemVec(raw, f.model.observations.ColView(observation))

	alpha := mat.Sum(raw)
	if alpha == 0 {
		return &DegenerateEvidenceError{Step: f.step + 1, Action: action, Observation: observation}
	}

	// Divide rather than scale by 1/alpha, which overflows for subnormal alpha.
	for i := 0; i < raw.Len(); i++ {
		raw.SetVec(i, raw.AtVec(i)/alpha)
	}
	f.belief = raw
	f.step++
	return nil
}

// Steps returns the number of pairs applied so far.
func (f *Filter) Steps() int {
	return f.step
}

// Vector returns a copy of the belief indexed by state id.
func (f *Filter) Vector() []float64 {
	return append([]float64(nil), f.belief.RawVector().Data...)
}

// Snapshot returns the current belief laid out on the grid.
func (f *Filter) Snapshot() Snapshot {
	m := f.model.Maze()
	grid := make([][]*float64, m.Height)
	for row := range grid {
		grid[row] = make([]*float64, m.Width)
	}
	for id := 0; id < m.NumStates(); id++ {
		pos := m.State(id).Position
		p := f.belief.AtVec(id)
		grid[pos.Row][pos.Col] = &p
	}
	return Snapshot{Step: f.step, Grid: grid}
}

// Run filters the paired action and observation sequences from the initial
// belief. The returned snapshots start with the initial belief and hold one
// entry per applied pair.
func Run(model *Model, initial map[maze.CellPosition]float64, actions []maze.Direction, observations []int) ([]Snapshot, error) {
	if len(actions) != len(observations) {
		return nil, configErrorf("%d actions but %d observations", len(actions), len(observations))
	}

	f, err := NewFilter(model, initial)
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, 0, len(actions)+1)
	snapshots = append(snapshots, f.Snapshot())
	for i := range actions {
		if err := f.Step(actions[i], observations[i]); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, f.Snapshot())
	}
	return snapshots, nil
}
