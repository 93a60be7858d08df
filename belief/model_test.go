package belief

import (
	"errors"
	"testing"

	"github.com/beka-birhanu/vinom-belief/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func classicMaze(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.New(
		[][]bool{
			{true, true, true, true},
			{true, false, true, true},
			{true, true, true, true},
		},
		[][]float64{
			{0, 0, 0, 1},
			{0, 0, 0, -1},
			{0, 0, 0, 0},
		},
	)
	require.NoError(t, err)
	return m
}

func classicConfig() Config {
	return Config{
		ActionConfusion: [][]float64{
			{0.8, 0, 0.1, 0.1},
			{0, 0.8, 0.1, 0.1},
			{0.1, 0.1, 0.8, 0},
			{0.1, 0.1, 0, 0.8},
		},
		ObservationConfusion: [][]float64{
			{0.9, 0.1, 0},
			{0.1, 0.9, 0},
			{0, 0, 1},
		},
	}
}

func classicModel(t *testing.T) *Model {
	t.Helper()
	model, err := NewModel(classicMaze(t), classicConfig())
	require.NoError(t, err)
	return model
}

func stateID(t *testing.T, m *maze.Maze, col, row int) int {
	t.Helper()
	id, ok := m.StateID(maze.CellPosition{Col: col, Row: row})
	require.True(t, ok, "no state at (%d,%d)", col, row)
	return id
}

func TestTransitionsAreStochastic(t *testing.T) {
	model := classicModel(t)
	n := model.NumStates()

	for a := maze.Direction(0); a < maze.NumDirections; a++ {
		for s := 0; s < n; s++ {
			var sum float64
			for next := 0; next < n; next++ {
				p := model.Transition(next, s, a)
				assert.GreaterOrEqual(t, p, 0.0)
				sum += p
			}
			assert.InDelta(t, 1, sum, tolerance, "state %d action %s", s, a)
		}
	}
}

func TestObservationsAreStochastic(t *testing.T) {
	model := classicModel(t)
	require.Equal(t, 3, model.NumObservations())

	for s := 0; s < model.NumStates(); s++ {
		var sum float64
		for e := 0; e < model.NumObservations(); e++ {
			sum += model.Observation(s, e)
		}
		assert.InDelta(t, 1, sum, tolerance, "state %d", s)
	}
}

func TestTerminalStatesAbsorb(t *testing.T) {
	model := classicModel(t)
	m := model.Maze()

	for _, s := range m.States() {
		if !s.Terminal() {
			continue
		}
		for a := maze.Direction(0); a < maze.NumDirections; a++ {
			for next := 0; next < model.NumStates(); next++ {
				want := 0.0
				if next == s.ID {
					want = 1
				}
				assert.Equal(t, want, model.Transition(next, s.ID, a))
			}
		}
	}
}

func TestTransitionMarginalisesIntendedActions(t *testing.T) {
	model := classicModel(t)
	m := model.Maze()

	start := stateID(t, m, 1, 0)
	right := stateID(t, m, 2, 0)
	left := stateID(t, m, 0, 0)

	// Up and Down are blocked at (1,0), so their Right-column weight stays put.
	assert.InDelta(t, 0.2, model.Transition(start, start, maze.Right), tolerance)
	assert.InDelta(t, 0.8, model.Transition(right, start, maze.Right), tolerance)
	assert.InDelta(t, 0.0, model.Transition(left, start, maze.Right), tolerance)

	assert.InDelta(t, 0.8, model.Transition(start, start, maze.Up), tolerance)
	assert.InDelta(t, 0.1, model.Transition(right, start, maze.Up), tolerance)
	assert.InDelta(t, 0.1, model.Transition(left, start, maze.Up), tolerance)
}

func TestObservationRows(t *testing.T) {
	model := classicModel(t)
	m := model.Maze()

	oneWall := stateID(t, m, 2, 0)
	twoWalls := stateID(t, m, 0, 0)
	terminal := stateID(t, m, 3, 1)

	assert.Equal(t, 0.9, model.Observation(oneWall, ObservedOneWall))
	assert.Equal(t, 0.9, model.Observation(twoWalls, ObservedTwoWalls))
	assert.Equal(t, 1.0, model.Observation(terminal, ObservedTerminal))
	assert.Equal(t, 0.0, model.Observation(terminal, ObservedOneWall))
}

func TestClassify(t *testing.T) {
	m := classicMaze(t)

	class, err := Classify(m.State(stateID(t, m, 2, 2)))
	require.NoError(t, err)
	assert.Equal(t, OneWall, class)

	class, err = Classify(m.State(stateID(t, m, 0, 2)))
	require.NoError(t, err)
	assert.Equal(t, TwoWalls, class)

	class, err = Classify(m.State(stateID(t, m, 3, 0)))
	require.NoError(t, err)
	assert.Equal(t, TerminalClass, class)

	open := maze.State{
		Position:  maze.CellPosition{Col: 5, Row: 5},
		Neighbors: [maze.NumDirections]int{1, 2, 3, 4},
	}
	_, err = Classify(open)
	var topo *maze.TopologyError
	require.True(t, errors.As(err, &topo))
	assert.Equal(t, 0, topo.Walls)
}

func TestNewModelRejectsBadConfig(t *testing.T) {
	m := classicMaze(t)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "action rows",
			mutate: func(c *Config) { c.ActionConfusion = c.ActionConfusion[:3] },
		},
		{
			name:   "action columns",
			mutate: func(c *Config) { c.ActionConfusion[0] = []float64{0.8, 0.1, 0.1} },
		},
		{
			name:   "action row not stochastic",
			mutate: func(c *Config) { c.ActionConfusion[2] = []float64{0.1, 0.1, 0.7, 0} },
		},
		{
			name: "action column not stochastic",
			mutate: func(c *Config) {
				c.ActionConfusion = [][]float64{
					{1, 0, 0, 0},
					{1, 0, 0, 0},
					{0, 0, 1, 0},
					{0, 0, 0, 1},
				}
			},
		},
		{
			name:   "negative probability",
			mutate: func(c *Config) { c.ActionConfusion[0] = []float64{1.2, -0.2, 0, 0} },
		},
		{
			name:   "observation classes",
			mutate: func(c *Config) { c.ObservationConfusion = c.ObservationConfusion[:2] },
		},
		{
			name: "observation without symbols",
			mutate: func(c *Config) {
				c.ObservationConfusion = [][]float64{{}, {}, {}}
			},
		},
		{
			name:   "ragged observation",
			mutate: func(c *Config) { c.ObservationConfusion[1] = []float64{0.1, 0.9} },
		},
		{
			name:   "observation row not stochastic",
			mutate: func(c *Config) { c.ObservationConfusion[0] = []float64{0.9, 0.2, 0} },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := classicConfig()
			tc.mutate(&cfg)
			_, err := NewModel(m, cfg)
			assert.ErrorIs(t, err, maze.ErrConfig)
		})
	}

	t.Run("nil maze", func(t *testing.T) {
		_, err := NewModel(nil, classicConfig())
		assert.ErrorIs(t, err, maze.ErrConfig)
	})
}
