package maze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classicGrids() ([][]bool, [][]float64) {
	passable := [][]bool{
		{true, true, true, true},
		{true, false, true, true},
		{true, true, true, true},
	}
	rewards := [][]float64{
		{0, 0, 0, 1},
		{0, 0, 0, -1},
		{0, 0, 0, 0},
	}
	return passable, rewards
}

func TestNew(t *testing.T) {
	passable, rewards := classicGrids()
	m, err := New(passable, rewards)
	require.NoError(t, err)

	t.Run("dimensions and ids", func(t *testing.T) {
		assert.Equal(t, 4, m.Width)
		assert.Equal(t, 3, m.Height)
		assert.Equal(t, 11, m.NumStates())
		for id, s := range m.States() {
			assert.Equal(t, id, s.ID)
			got, ok := m.StateID(s.Position)
			assert.True(t, ok)
			assert.Equal(t, id, got)
		}
	})

	t.Run("row-major order", func(t *testing.T) {
		assert.Equal(t, CellPosition{Col: 0, Row: 0}, m.State(0).Position)
		assert.Equal(t, CellPosition{Col: 3, Row: 0}, m.State(3).Position)
		assert.Equal(t, CellPosition{Col: 2, Row: 1}, m.State(5).Position)
		assert.Equal(t, CellPosition{Col: 3, Row: 2}, m.State(10).Position)
	})

	t.Run("walls are not states", func(t *testing.T) {
		_, ok := m.StateAt(CellPosition{Col: 1, Row: 1})
		assert.False(t, ok)
		_, ok = m.StateAt(CellPosition{Col: 4, Row: 0})
		assert.False(t, ok)
		_, ok = m.StateAt(CellPosition{Col: -1, Row: 0})
		assert.False(t, ok)
	})

	t.Run("neighbors", func(t *testing.T) {
		s, ok := m.StateAt(CellPosition{Col: 2, Row: 1})
		require.True(t, ok)

		up, ok := s.Neighbor(Up)
		assert.True(t, ok)
		assert.Equal(t, CellPosition{Col: 2, Row: 0}, m.State(up).Position)

		down, ok := s.Neighbor(Down)
		assert.True(t, ok)
		assert.Equal(t, CellPosition{Col: 2, Row: 2}, m.State(down).Position)

		right, ok := s.Neighbor(Right)
		assert.True(t, ok)
		assert.Equal(t, CellPosition{Col: 3, Row: 1}, m.State(right).Position)

		_, ok = s.Neighbor(Left)
		assert.False(t, ok, "interior wall blocks the left move")
		assert.Equal(t, 1, s.Walls())
	})

	t.Run("adjacent states reference each other through opposite slots", func(t *testing.T) {
		opposite := map[Direction]Direction{Up: Down, Down: Up, Right: Left, Left: Right}
		for _, s := range m.States() {
			for d := Direction(0); d < NumDirections; d++ {
				n, ok := s.Neighbor(d)
				if !ok {
					continue
				}
				back, ok := m.State(n).Neighbor(opposite[d])
				assert.True(t, ok)
				assert.Equal(t, s.ID, back)
			}
		}
	})

	t.Run("terminals", func(t *testing.T) {
		win, _ := m.StateAt(CellPosition{Col: 3, Row: 0})
		lose, _ := m.StateAt(CellPosition{Col: 3, Row: 1})
		start, _ := m.StateAt(CellPosition{Col: 1, Row: 0})
		assert.True(t, win.Terminal())
		assert.True(t, lose.Terminal())
		assert.False(t, start.Terminal())
		assert.Equal(t, -1.0, lose.Reward)
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "...+\n.#.-\n....\n", m.String())
	})
}

func TestNewRejectsMalformedGrids(t *testing.T) {
	tests := []struct {
		name     string
		passable [][]bool
		rewards  [][]float64
	}{
		{name: "empty", passable: nil, rewards: nil},
		{
			name:     "row count mismatch",
			passable: [][]bool{{true, true}},
			rewards:  [][]float64{{0, 0}, {0, 0}},
		},
		{
			name:     "column count mismatch",
			passable: [][]bool{{true, true}},
			rewards:  [][]float64{{0, 0, 0}},
		},
		{
			name:     "ragged passability",
			passable: [][]bool{{true, true}, {true}},
			rewards:  [][]float64{{0, 0}, {0, 0}},
		},
		{
			name:     "all walls",
			passable: [][]bool{{false, false}},
			rewards:  [][]float64{{0, 0}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.passable, tc.rewards)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestNewRejectsUnsupportedTopology(t *testing.T) {
	t.Run("isolated cell", func(t *testing.T) {
		passable := [][]bool{
			{true, true, true},
			{true, false, true},
			{false, true, false},
		}
		rewards := [][]float64{
			{0, 0, 0},
			{1, 0, -1},
			{0, 0, 0},
		}
		_, err := New(passable, rewards)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTopology)

		var topo *TopologyError
		require.True(t, errors.As(err, &topo))
		assert.Equal(t, CellPosition{Col: 1, Row: 2}, topo.Position)
		assert.Equal(t, 4, topo.Walls)
	})

	t.Run("isolated terminal", func(t *testing.T) {
		_, err := New([][]bool{{true}}, [][]float64{{1}})
		assert.ErrorIs(t, err, ErrTopology)
	})

	t.Run("three walls", func(t *testing.T) {
		passable := [][]bool{{true, true}}
		rewards := [][]float64{{0, 0}}
		_, err := New(passable, rewards)

		var topo *TopologyError
		require.True(t, errors.As(err, &topo))
		assert.Equal(t, 3, topo.Walls)
		assert.False(t, topo.Terminal)
	})

	t.Run("open interior", func(t *testing.T) {
		passable := [][]bool{
			{true, true, true},
			{true, true, true},
			{true, true, true},
		}
		rewards := make([][]float64, 3)
		for i := range rewards {
			rewards[i] = make([]float64, 3)
		}
		_, err := New(passable, rewards)

		var topo *TopologyError
		require.True(t, errors.As(err, &topo))
		assert.Equal(t, CellPosition{Col: 1, Row: 1}, topo.Position)
		assert.Equal(t, 0, topo.Walls)
	})
}

func TestCopiesAreDetached(t *testing.T) {
	passable, rewards := classicGrids()
	m, err := New(passable, rewards)
	require.NoError(t, err)

	passable[0][0] = false
	rewards[2][2] = 5
	assert.True(t, m.Passable()[0][0])
	assert.Equal(t, 0.0, m.Rewards()[2][2])

	states := m.States()
	states[0].Reward = 9
	assert.Equal(t, 0.0, m.State(0).Reward)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "Right", Right.String())
	assert.Equal(t, "Direction(7)", Direction(7).String())
}
