package service

import (
	"context"
	"time"

	"github.com/JaredCorduan/rush-hour-solver/game/board"
	"github.com/JaredCorduan/rush-hour-solver/game/solver"
)

// SolverService defines all solver-related operations.
type SolverService interface {
	// Puzzle library
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	GetPuzzle(ctx context.Context, name string) (*board.Definition, error)
	SavePuzzle(ctx context.Context, name string, def *board.Definition) error

	// Solving
	SolveBoard(ctx context.Context, def *board.Definition, maxNodes int) (*SolveResult, error)
	StartSolve(ctx context.Context, puzzleName string, maxNodes int) (*SolveInfo, error)

	// Solve records
	GetSolve(ctx context.Context, solveID string) (*SolveInfo, error)
	ListSolves(ctx context.Context) ([]*SolveInfo, error)
	DeleteSolve(ctx context.Context, solveID string) error
}

// RecordManager defines solve-record storage operations.
type RecordManager interface {
	Create(id, puzzleName string, def *board.Definition) (*Record, error)
	Get(id string) (*Record, error)
	List() []*Record
	Delete(id string) error
	Update(id string, fn func(*Record)) error
	Save(id string) error
}

// PuzzleManager handles puzzle definition loading.
type PuzzleManager interface {
	LoadPuzzle(name string) (*board.Definition, error)
	ListPuzzles() ([]*PuzzleInfo, error)
	GetDefault() *board.Definition
	SavePuzzle(name string, def *board.Definition) error
}

// Solve status values for a Record.
const (
	StatusRunning  = "running"
	StatusFinished = "finished"
	StatusFailed   = "failed"
)

// Record is one solve run tracked by the archive. While Status is running
// only the identity fields are meaningful; the outcome fields are filled in
// when the run finishes or fails.
type Record struct {
	ID         string            `json:"id"`
	PuzzleName string            `json:"puzzle_name"`
	Definition *board.Definition `json:"definition"`
	Status     string            `json:"status"`

	Solvable      bool          `json:"solvable"`
	Moves         []solver.Move `json:"moves,omitempty"`
	NodesExplored int           `json:"nodes_explored"`
	Layers        int           `json:"layers"`
	Error         string        `json:"error,omitempty"`

	CreatedAt  time.Time     `json:"created_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration_ns"`
}
