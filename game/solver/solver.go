package solver

import (
	"context"
	"fmt"

	"github.com/JaredCorduan/rush-hour-solver/game/board"
)

// Solver finds a shortest move sequence that brings the player vehicle to
// the exit cell. A Solver is immutable after construction; each Solve call
// owns its own search state.
type Solver struct {
	start   board.Board
	player  string
	exitRow int
	opts    options
}

// New creates a solver for the given starting board. The exit cell is the
// rightmost column of the grid on exitRow.
func New(start board.Board, player string, exitRow int, opts ...Option) *Solver {
	s := &Solver{start: start, player: player, exitRow: exitRow}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// historyEntry records how a frontier board was discovered.
type historyEntry struct {
	parent int
	move   Move
}

// searchContext owns all mutable state of one Solve call. The frontier is
// an append-only record of every board discovered, in discovery order; the
// index map doubles as the visited set, keyed by canonical board content.
type searchContext struct {
	frontier []board.Board
	index    map[string]int
	history  []historyEntry
}

func newSearchContext(start board.Board) *searchContext {
	sc := &searchContext{
		frontier: []board.Board{start},
		index:    map[string]int{start.Key(): 0},
		history:  []historyEntry{{parent: -1}},
	}
	return sc
}

// add records a newly discovered board and returns its frontier index.
func (sc *searchContext) add(b board.Board, parent int, m Move) int {
	idx := len(sc.frontier)
	sc.frontier = append(sc.frontier, b)
	sc.index[b.Key()] = idx
	sc.history = append(sc.history, historyEntry{parent: parent, move: m})
	return idx
}

// path walks parent links backward from goal to the start board and returns
// the chronological move list. The walk is iterative; solutions can be long.
func (sc *searchContext) path(goal int) []Move {
	var reversed []Move
	for idx := goal; sc.history[idx].parent >= 0; idx = sc.history[idx].parent {
		reversed = append(reversed, sc.history[idx].move)
	}

	moves := make([]Move, len(reversed))
	for i, m := range reversed {
		moves[len(reversed)-1-i] = m
	}
	return moves
}

// Solve validates the starting board and runs a breadth-first search over
// the reachable state space. It returns a Solution with the shortest move
// sequence, or with Solvable set to false once every reachable board has
// been expanded without reaching the exit. The context is checked between
// layers; cancellation aborts the search with the context's error.
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	if err := s.start.Validate(s.player, s.exitRow); err != nil {
		return nil, err
	}

	if s.isGoal(s.start) {
		return &Solution{Solvable: true, Moves: []Move{}, NodesExplored: 1}, nil
	}

	sc := newSearchContext(s.start)
	layerStart := 0

	for layer := 0; ; layer++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		layerEnd := len(sc.frontier)
		if layerStart == layerEnd {
			// Reachable state space exhausted: a normal outcome, not an error.
			return &Solution{Solvable: false, NodesExplored: len(sc.frontier), Layers: layer}, nil
		}

		if s.opts.onLayer != nil {
			s.opts.onLayer(Progress{
				Layer:         layer,
				FrontierSize:  layerEnd - layerStart,
				NodesExplored: len(sc.frontier),
			})
		}

		for i := layerStart; i < layerEnd; i++ {
			for _, c := range expand(sc.frontier[i]) {
				if _, seen := sc.index[c.board.Key()]; seen {
					continue
				}

				j := sc.add(c.board, i, c.move)

				if s.isGoal(c.board) {
					return &Solution{
						Solvable:      true,
						Moves:         sc.path(j),
						NodesExplored: len(sc.frontier),
						Layers:        layer + 1,
					}, nil
				}

				if s.opts.nodeLimit > 0 && len(sc.frontier) >= s.opts.nodeLimit {
					return nil, fmt.Errorf("%w: %d boards discovered", ErrNodeLimit, len(sc.frontier))
				}
			}
		}

		layerStart = layerEnd
	}
}

// isGoal reports whether the player vehicle occupies the exit cell.
func (s *Solver) isGoal(b board.Board) bool {
	v, ok := b.Vehicle(s.player)
	if !ok {
		return false
	}
	return v.Occupies(board.Position{X: b.Size(), Y: s.exitRow})
}
