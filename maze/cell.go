package maze

import "fmt"

// Direction is a movement direction. Its value is the action index used by the
// action-confusion matrix and by every transition table.
type Direction int

const (
	Up Direction = iota
	Down
	Right
	Left
)

// NumDirections is the number of actions an agent can take.
const NumDirections = 4

// NoNeighbor marks a neighbor slot that is blocked by a wall or the grid boundary.
const NoNeighbor = -1

var (
	// Directions maps each direction to its row/column offset.
	Directions = [NumDirections]CellPosition{
		Up:    {Col: 0, Row: -1},
		Down:  {Col: 0, Row: 1},
		Right: {Col: 1, Row: 0},
		Left:  {Col: -1, Row: 0},
	}

	directionNames = [NumDirections]string{"Up", "Down", "Right", "Left"}
)

// String returns the name of the direction.
func (d Direction) String() string {
	if d < 0 || int(d) >= NumDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// CellPosition represents the position of a cell in the maze grid.
// Row 0 is the top row of the grid.
type CellPosition struct {
	Col int `json:"col" bson:"col"` // Column index of the cell
	Row int `json:"row" bson:"row"` // Row index of the cell
}

// Add returns the position shifted by delta.
func (cp CellPosition) Add(delta CellPosition) CellPosition {
	return CellPosition{Col: cp.Col + delta.Col, Row: cp.Row + delta.Row}
}

// String returns the position as (col,row).
func (cp CellPosition) String() string {
	return fmt.Sprintf("(%d,%d)", cp.Col, cp.Row)
}

// State is a traversable cell of the maze.
// States are value records; they never change once the maze is built.
type State struct {
	ID        int                // Dense index into every probability vector
	Position  CellPosition       // Cell the state occupies
	Reward    float64            // Reward of the cell, nonzero marks a terminal
	Neighbors [NumDirections]int // Neighbor state id per direction, or NoNeighbor
}

// Terminal reports whether the state is absorbing.
func (s State) Terminal() bool {
	return s.Reward != 0
}

// Neighbor returns the id of the adjacent state in direction d.
func (s State) Neighbor(d Direction) (int, bool) {
	id := s.Neighbors[d]
	return id, id != NoNeighbor
}

// Walls counts the directions the agent cannot move in.
func (s State) Walls() int {
	walls := 0
	for _, n := range s.Neighbors {
		if n == NoNeighbor {
			walls++
		}
	}
	return walls
}
