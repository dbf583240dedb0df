package solver

import (
	"errors"
	"fmt"

	"github.com/JaredCorduan/rush-hour-solver/game/board"
)

// ErrNodeLimit is returned when the search hits the configured node cap
// before reaching the goal or exhausting the state space. It is distinct
// from the no-solution outcome, which is not an error.
var ErrNodeLimit = errors.New("solver: node limit reached")

// Direction is one of the four slide directions.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Delta returns the unit step for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	}
	return 0, 0
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	return d
}

// Move is a single slide of one vehicle by Steps cells in Direction.
type Move struct {
	Vehicle   string    `json:"vehicle"`
	Direction Direction `json:"direction"`
	Steps     int       `json:"steps"`
}

// Description renders the move in the solver's output form,
// e.g. "R -> right 2".
func (m Move) Description() string {
	return fmt.Sprintf("%s -> %s %d", m.Vehicle, m.Direction, m.Steps)
}

// Solution is the outcome of one completed search. When Solvable is false
// the reachable state space was exhausted without reaching the exit and
// Moves is nil. When Solvable is true, Moves holds the chronological
// shortest move sequence; it is empty if the start board already satisfies
// the goal.
type Solution struct {
	Solvable      bool   `json:"solvable"`
	Moves         []Move `json:"moves,omitempty"`
	NodesExplored int    `json:"nodes_explored"`
	Layers        int    `json:"layers"`
}

// Progress describes one completed BFS layer. Layer is the depth of the
// layer about to be expanded, FrontierSize the number of boards in it, and
// NodesExplored the total number of distinct boards discovered so far.
type Progress struct {
	Layer         int `json:"layer"`
	FrontierSize  int `json:"frontier_size"`
	NodesExplored int `json:"nodes_explored"`
}

// Option configures a Solver.
type Option func(*options)

type options struct {
	nodeLimit int
	onLayer   func(Progress)
}

// WithNodeLimit caps the number of distinct boards the search may discover.
// Zero or negative means unlimited. Hitting the cap aborts the search with
// ErrNodeLimit.
func WithNodeLimit(n int) Option {
	return func(o *options) { o.nodeLimit = n }
}

// WithProgress installs a hook invoked once per BFS layer before the layer
// is expanded. The hook must not block; it runs on the solving goroutine.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) { o.onLayer = fn }
}

// Apply plays a move on a board, returning the resulting board. It verifies
// that the vehicle exists, that the move slides along the vehicle's axis,
// and that every cell entered is vacant and in bounds.
func Apply(b board.Board, m Move) (board.Board, error) {
	v, ok := b.Vehicle(m.Vehicle)
	if !ok {
		return board.Board{}, fmt.Errorf("apply %q: no vehicle named %q", m.Description(), m.Vehicle)
	}

	dx, dy := m.Direction.Delta()
	if m.Steps < 1 || (dx == 0 && dy == 0) {
		return board.Board{}, fmt.Errorf("apply %q: invalid move", m.Description())
	}
	if (v.Orientation == board.Horizontal) != (dy == 0) {
		return board.Board{}, fmt.Errorf("apply %q: direction %s is off the vehicle's axis", m.Description(), m.Direction)
	}

	occupied := b.Occupied()
	lead := leadingCell(v, m.Direction)
	for step := 1; step <= m.Steps; step++ {
		probe := board.Position{X: lead.X + dx*step, Y: lead.Y + dy*step}
		if !b.InBounds(probe) || occupied[probe] {
			return board.Board{}, fmt.Errorf("apply %q: cell (%d,%d) is blocked", m.Description(), probe.X, probe.Y)
		}
	}

	return b.WithVehicle(v.Shifted(dx*m.Steps, dy*m.Steps)), nil
}

// leadingCell returns the vehicle cell closest to the direction of travel.
func leadingCell(v board.Vehicle, d Direction) board.Position {
	switch d {
	case Left, Up:
		return v.Cells[0]
	default:
		return v.Cells[len(v.Cells)-1]
	}
}
