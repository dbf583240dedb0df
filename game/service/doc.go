// Package service defines the solver's application-level operations and
// wires the puzzle library to the search engine.
//
// SolverService is the contract consumed by the REST API, the MCP
// transport, and the CLI. It exposes puzzle listing and retrieval,
// synchronous solving of an inline board, and asynchronous solve runs
// tracked as records: StartSolve returns immediately with a running record,
// progress is surfaced through an optional per-layer handler, and the
// finished record carries the move list or the no-solution outcome.
//
// The RecordManager and PuzzleManager interfaces decouple the service from
// its storage: game/archive provides the record store and game/puzzle the
// puzzle library.
package service
