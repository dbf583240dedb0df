package solver

import "github.com/JaredCorduan/rush-hour-solver/game/board"

// candidate pairs a generated move with the board it produces.
type candidate struct {
	move  Move
	board board.Board
}

// directionsFor returns the two slide directions for an orientation, in
// enumeration order: left before right, up before down.
func directionsFor(o board.Orientation) [2]Direction {
	if o == board.Horizontal {
		return [2]Direction{Left, Right}
	}
	return [2]Direction{Up, Down}
}

// movesFor enumerates every board reachable by sliding one vehicle along
// its axis. For each direction it probes outward from the vehicle's leading
// cell one step at a time, emitting a candidate per vacant step count. The
// result is a finite, fully materialized slice: at most size-length
// candidates per direction.
func movesFor(b board.Board, v board.Vehicle, occupied map[board.Position]bool) []candidate {
	var out []candidate

	for _, dir := range directionsFor(v.Orientation) {
		dx, dy := dir.Delta()
		lead := leadingCell(v, dir)

		for step := 1; ; step++ {
			probe := board.Position{X: lead.X + dx*step, Y: lead.Y + dy*step}
			if !b.InBounds(probe) || occupied[probe] {
				break
			}
			m := Move{Vehicle: v.Name, Direction: dir, Steps: step}
			out = append(out, candidate{
				move:  m,
				board: b.WithVehicle(v.Shifted(dx*step, dy*step)),
			})
		}
	}

	return out
}

// expand enumerates the labeled move set for every vehicle on the board.
// Vehicles are visited in name order (boards keep them sorted), which makes
// exploration deterministic run-to-run.
func expand(b board.Board) []candidate {
	occupied := b.Occupied()

	var out []candidate
	for _, v := range b.Vehicles() {
		out = append(out, movesFor(b, v, occupied)...)
	}
	return out
}
