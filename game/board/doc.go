// Package board provides the data model for Rush Hour puzzles.
//
// The board package implements the puzzle building blocks including:
//   - Vehicle construction from model tags (hcar, hbus, vcar, vbus)
//   - Immutable Board snapshots with order-independent equality keys
//   - Structural validation of a starting position
//   - Puzzle Definition files (JSON) and descriptor parsing
//   - ASCII rendering of a board
//
// Core Types:
//
// A Vehicle is one rectangular piece identified by name, orientation, and
// the grid cells it occupies. A Board is a complete snapshot of all vehicle
// positions; boards are values and are never mutated in place — sliding a
// vehicle produces a new Board. A Definition is the JSON-level description
// of a puzzle from which a Board is built.
//
// Usage:
//
//	def, err := board.LoadDefinition("puzzles/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	b, err := def.Board()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := b.Validate(def.Player, def.ExitRow); err != nil {
//		log.Fatal(err)
//	}
//
// Coordinates are 1-indexed on both axes: (1,1) is the top-left cell and
// (N,N) the bottom-right cell of an N×N grid. The exit sits on the rightmost
// column at the player vehicle's row.
package board
