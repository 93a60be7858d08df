/*
Package maze turns a rectangular passability grid into the state space used by
belief tracking.

Every passable cell becomes a State with a dense id, its reward and one neighbor
slot per Direction. Walls and the grid boundary are modeled the same way: the
neighbor slot is left as NoNeighbor and the agent stays in place when it tries
to move there.

The package validates the layout eagerly. Each non-terminal state must have
exactly one or two walls, and no passable cell may be cut off on all four sides.
*/
package maze

import (
	"math"
	"strings"
)

// Maze is the immutable state space derived from a passability grid.
type Maze struct {
	Width  int         // Width of the grid (number of columns)
	Height int         // Height of the grid (number of rows)
	states []State     // States indexed by id
	grid   [][]int     // State id per cell, NoNeighbor for walls
	open   [][]bool    // Passability as supplied
	reward [][]float64 // Rewards as supplied
}

// New builds the state space for the given passability and reward grids.
// Both grids are indexed [row][col] with row 0 at the top and must share dimensions.
func New(passable [][]bool, rewards [][]float64) (*Maze, error) {
	if err := validateGrids(passable, rewards); err != nil {
		return nil, err
	}

	height, width := len(passable), len(passable[0])
	m := &Maze{
		Width:  width,
		Height: height,
		grid:   make([][]int, height),
		open:   make([][]bool, height),
		reward: make([][]float64, height),
	}

	// Allocate states in row-major order.
	for row := 0; row < height; row++ {
		m.grid[row] = make([]int, width)
		m.open[row] = append([]bool(nil), passable[row]...)
		m.reward[row] = append([]float64(nil), rewards[row]...)
		for col := 0; col < width; col++ {
			m.grid[row][col] = NoNeighbor
			if !passable[row][col] {
				continue
			}
			id := len(m.states)
			m.grid[row][col] = id
			m.states = append(m.states, State{
				ID:       id,
				Position: CellPosition{Col: col, Row: row},
				Reward:   rewards[row][col],
			})
		}
	}

	if len(m.states) == 0 {
		return nil, configErrorf("grid has no passable cells")
	}

	for id := range m.states {
		m.linkNeighbors(&m.states[id])
	}

	if err := m.validateTopology(); err != nil {
		return nil, err
	}

	return m, nil
}

// validateGrids checks that both grids are non-empty, rectangular and the same size.
func validateGrids(passable [][]bool, rewards [][]float64) error {
	if len(passable) == 0 || len(passable[0]) == 0 {
		return configErrorf("passability grid is empty")
	}
	if len(rewards) != len(passable) {
		return configErrorf("reward grid has %d rows, passability grid has %d", len(rewards), len(passable))
	}

	width := len(passable[0])
	for row := range passable {
		if len(passable[row]) != width {
			return configErrorf("passability row %d has %d columns, want %d", row, len(passable[row]), width)
		}
		if len(rewards[row]) != width {
			return configErrorf("reward row %d has %d columns, want %d", row, len(rewards[row]), width)
		}
		for col, r := range rewards[row] {
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return configErrorf("reward at (%d,%d) is not finite", col, row)
			}
		}
	}
	return nil
}

// linkNeighbors fills the neighbor slots of a state from the grid.
func (m *Maze) linkNeighbors(s *State) {
	for d, delta := range Directions {
		s.Neighbors[d] = NoNeighbor
		if id, ok := m.StateID(s.Position.Add(delta)); ok {
			s.Neighbors[d] = id
		}
	}
}

// validateTopology rejects states the observation model cannot classify.
func (m *Maze) validateTopology() error {
	for _, s := range m.states {
		walls := s.Walls()
		isolated := walls == NumDirections
		if isolated || (!s.Terminal() && (walls < 1 || walls > 2)) {
			return &TopologyError{Position: s.Position, Walls: walls, Terminal: s.Terminal()}
		}
	}
	return nil
}

// InBounds reports whether pos lies inside the grid.
func (m *Maze) InBounds(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.Height && pos.Col >= 0 && pos.Col < m.Width
}

// StateID returns the id of the state at pos, or false for walls and out-of-bounds positions.
func (m *Maze) StateID(pos CellPosition) (int, bool) {
	if !m.InBounds(pos) {
		return NoNeighbor, false
	}
	id := m.grid[pos.Row][pos.Col]
	return id, id != NoNeighbor
}

// StateAt returns the state at pos.
func (m *Maze) StateAt(pos CellPosition) (State, bool) {
	id, ok := m.StateID(pos)
	if !ok {
		return State{}, false
	}
	return m.states[id], true
}

// State returns the state with the given id.
func (m *Maze) State(id int) State {
	return m.states[id]
}

// States returns a copy of the states ordered by id.
func (m *Maze) States() []State {
	return append([]State(nil), m.states...)
}

// NumStates returns the number of passable cells.
func (m *Maze) NumStates() int {
	return len(m.states)
}

// Passable returns a copy of the passability grid the maze was built from.
func (m *Maze) Passable() [][]bool {
	out := make([][]bool, m.Height)
	for row := range m.open {
		out[row] = append([]bool(nil), m.open[row]...)
	}
	return out
}

// Rewards returns a copy of the reward grid the maze was built from.
func (m *Maze) Rewards() [][]float64 {
	out := make([][]float64, m.Height)
	for row := range m.reward {
		out[row] = append([]float64(nil), m.reward[row]...)
	}
	return out
}

// String provides a textual representation of the maze.
// Open cells are '.', walls '#', and terminals '+' or '-' by the sign of their reward.
func (m *Maze) String() string {
	var b strings.Builder
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			s, ok := m.StateAt(CellPosition{Col: col, Row: row})
			switch {
			case !ok:
				b.WriteByte('#')
			case s.Reward > 0:
				b.WriteByte('+')
			case s.Reward < 0:
				b.WriteByte('-')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
