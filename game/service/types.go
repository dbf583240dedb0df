package service

import (
	"time"
)

// PuzzleInfo provides information about a puzzle definition file.
type PuzzleInfo struct {
	Filename    string `json:"filename"`
	PuzzleID    string `json:"puzzle_id"` // The identifier to use when starting a solve
	Name        string `json:"name"`      // Display name
	Description string `json:"description,omitempty"`
	GridSize    int    `json:"grid_size"`
	Vehicles    int    `json:"vehicles"`
	Player      string `json:"player"`
}

// SolveResult is the outcome of a synchronous solve.
type SolveResult struct {
	Solvable      bool     `json:"solvable"`
	Moves         []string `json:"moves"`
	MoveCount     int      `json:"move_count"`
	NodesExplored int      `json:"nodes_explored"`
	Layers        int      `json:"layers"`
	DurationMS    int64    `json:"duration_ms"`
}

// SolveInfo describes a tracked solve run.
type SolveInfo struct {
	ID            string    `json:"id"`
	PuzzleName    string    `json:"puzzle_name"`
	Status        string    `json:"status"`
	Solvable      bool      `json:"solvable"`
	Moves         []string  `json:"moves,omitempty"`
	MoveCount     int       `json:"move_count"`
	NodesExplored int       `json:"nodes_explored"`
	Layers        int       `json:"layers"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	FinishedAt    time.Time `json:"finished_at"`
	DurationMS    int64     `json:"duration_ms"`
}

// ProgressEvent is one BFS layer update for a tracked solve, suitable for
// streaming to clients.
type ProgressEvent struct {
	SolveID       string `json:"solve_id"`
	Layer         int    `json:"layer"`
	FrontierSize  int    `json:"frontier_size"`
	NodesExplored int    `json:"nodes_explored"`
}
