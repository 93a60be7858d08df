package belief

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-belief/maze"
)

// Snapshot is a belief laid out on the maze grid.
// Grid is indexed [row][col]; a nil entry marks a wall, which is not a state.
type Snapshot struct {
	Step int          `json:"step" bson:"step"`
	Grid [][]*float64 `json:"grid" bson:"grid"`
}

// At returns the probability of the cell at pos and whether the cell is a state.
func (s Snapshot) At(pos maze.CellPosition) (float64, bool) {
	if pos.Row < 0 || pos.Row >= len(s.Grid) || pos.Col < 0 || pos.Col >= len(s.Grid[pos.Row]) {
		return 0, false
	}
	p := s.Grid[pos.Row][pos.Col]
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Sum returns the total probability mass of the snapshot.
func (s Snapshot) Sum() float64 {
	var total float64
	for _, row := range s.Grid {
		for _, p := range row {
			if p != nil {
				total += *p
			}
		}
	}
	return total
}

// MostLikely returns the cell holding the largest probability.
// Ties resolve to the first cell in row-major order.
func (s Snapshot) MostLikely() (maze.CellPosition, float64) {
	best, bestP := maze.CellPosition{Col: -1, Row: -1}, -1.0
	for row, cells := range s.Grid {
		for col, p := range cells {
			if p != nil && *p > bestP {
				best, bestP = maze.CellPosition{Col: col, Row: row}, *p
			}
		}
	}
	return best, bestP
}

// String renders the snapshot one grid row per line with three decimals.
func (s Snapshot) String() string {
	var b strings.Builder
	for _, row := range s.Grid {
		cells := make([]string, len(row))
		for col, p := range row {
			if p == nil {
				cells[col] = " WALL"
			} else {
				cells[col] = fmt.Sprintf("%.3f", *p)
			}
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteByte('\n')
	}
	return b.String()
}
