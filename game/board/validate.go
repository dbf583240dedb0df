package board

import (
	"errors"
	"fmt"
)

// Validation errors for a starting board. Each rejection is a distinct
// sentinel so callers can classify failures with errors.Is.
var (
	ErrOverlap          = errors.New("board validation: vehicles overlap")
	ErrOutOfBounds      = errors.New("board validation: vehicle out of bounds")
	ErrDuplicateName    = errors.New("board validation: duplicate vehicle name")
	ErrMissingPlayer    = errors.New("board validation: player vehicle not found")
	ErrWrongOrientation = errors.New("board validation: player vehicle must be horizontal")
	ErrWrongRow         = errors.New("board validation: player vehicle not on exit row")
)

// Validate checks the structural legality of a starting board before any
// search is attempted. It rejects overlapping vehicles, out-of-bounds
// cells, duplicate names, a missing or vertical player vehicle, and a
// player vehicle off the exit row. A nil return means the board is legal.
func (b Board) Validate(player string, exitRow int) error {
	seen := make(map[Position]string, len(b.vehicles)*BusLength)
	for _, v := range b.vehicles {
		for _, c := range v.Cells {
			if owner, taken := seen[c]; taken {
				return fmt.Errorf("%w: %q and %q both occupy (%d,%d)", ErrOverlap, owner, v.Name, c.X, c.Y)
			}
			seen[c] = v.Name
		}
	}

	for _, v := range b.vehicles {
		for _, c := range v.Cells {
			if !b.InBounds(c) {
				return fmt.Errorf("%w: %q occupies (%d,%d) outside the %dx%d grid", ErrOutOfBounds, v.Name, c.X, c.Y, b.size, b.size)
			}
		}
	}

	names := make(map[string]bool, len(b.vehicles))
	for _, v := range b.vehicles {
		if names[v.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, v.Name)
		}
		names[v.Name] = true
	}

	pv, ok := b.Vehicle(player)
	if !ok {
		return fmt.Errorf("%w: no vehicle named %q", ErrMissingPlayer, player)
	}
	if pv.Orientation != Horizontal {
		return fmt.Errorf("%w: %q is vertical", ErrWrongOrientation, player)
	}
	if pv.Row() != exitRow {
		return fmt.Errorf("%w: %q is on row %d, exit is on row %d", ErrWrongRow, player, pv.Row(), exitRow)
	}

	return nil
}
