package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/JaredCorduan/rush-hour-solver/game/board"
	"github.com/JaredCorduan/rush-hour-solver/game/solver"
)

// DefaultNodeLimit bounds solve runs started through the service so a
// hostile puzzle cannot exhaust memory. Direct library users pick their own
// limit via solver.WithNodeLimit.
const DefaultNodeLimit = 1 << 20

// solverServiceImpl implements the SolverService interface.
type solverServiceImpl struct {
	records    RecordManager
	puzzles    PuzzleManager
	onProgress func(ProgressEvent)
	onFinished func(*SolveInfo)
}

// NewSolverService creates a new solver service instance.
func NewSolverService(records RecordManager, puzzles PuzzleManager) SolverService {
	return &solverServiceImpl{
		records: records,
		puzzles: puzzles,
	}
}

// SetProgressHandler installs a handler invoked once per BFS layer of every
// tracked solve. Must be called before any solve is started.
func SetProgressHandler(s SolverService, fn func(ProgressEvent)) {
	if impl, ok := s.(*solverServiceImpl); ok {
		impl.onProgress = fn
	}
}

// SetFinishedHandler installs a handler invoked when a tracked solve
// finishes or fails. Must be called before any solve is started.
func SetFinishedHandler(s SolverService, fn func(*SolveInfo)) {
	if impl, ok := s.(*solverServiceImpl); ok {
		impl.onFinished = fn
	}
}

// ListPuzzles returns all available puzzle definitions.
func (s *solverServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	return s.puzzles.ListPuzzles()
}

// GetPuzzle retrieves one puzzle definition by name.
func (s *solverServiceImpl) GetPuzzle(ctx context.Context, name string) (*board.Definition, error) {
	if name == "" {
		return s.puzzles.GetDefault(), nil
	}
	return s.puzzles.LoadPuzzle(name)
}

// SavePuzzle validates and stores a puzzle definition.
func (s *solverServiceImpl) SavePuzzle(ctx context.Context, name string, def *board.Definition) error {
	return s.puzzles.SavePuzzle(name, def)
}

// SolveBoard runs a synchronous solve of an inline puzzle definition.
func (s *solverServiceImpl) SolveBoard(ctx context.Context, def *board.Definition, maxNodes int) (*SolveResult, error) {
	if def == nil {
		return nil, fmt.Errorf("puzzle definition cannot be nil")
	}
	if err := board.ValidateDefinition(def); err != nil {
		return nil, err
	}

	b, err := def.Board()
	if err != nil {
		return nil, err
	}

	if maxNodes <= 0 {
		maxNodes = DefaultNodeLimit
	}

	started := time.Now()
	sol, err := solver.New(b, def.Player, def.ExitRow, solver.WithNodeLimit(maxNodes)).Solve(ctx)
	if err != nil {
		return nil, err
	}

	return &SolveResult{
		Solvable:      sol.Solvable,
		Moves:         moveDescriptions(sol.Moves),
		MoveCount:     len(sol.Moves),
		NodesExplored: sol.NodesExplored,
		Layers:        sol.Layers,
		DurationMS:    time.Since(started).Milliseconds(),
	}, nil
}

// StartSolve loads a puzzle, creates a running record, and solves it on a
// background goroutine. The returned SolveInfo reflects the running state;
// poll GetSolve or subscribe to the progress stream for the outcome.
func (s *solverServiceImpl) StartSolve(ctx context.Context, puzzleName string, maxNodes int) (*SolveInfo, error) {
	var def *board.Definition
	var err error

	if puzzleName != "" {
		def, err = s.puzzles.LoadPuzzle(puzzleName)
		if err != nil {
			available, listErr := s.puzzles.ListPuzzles()
			if listErr == nil && len(available) > 0 {
				var ids []string
				for _, p := range available {
					ids = append(ids, p.PuzzleID)
				}
				return nil, fmt.Errorf("puzzle %q not found. Available puzzles: %v", puzzleName, ids)
			}
			return nil, fmt.Errorf("failed to load puzzle %q: %w", puzzleName, err)
		}
	} else {
		def = s.puzzles.GetDefault()
		puzzleName = def.Name
	}

	// Surface validation failures to the caller before a record is created.
	if err := board.ValidateDefinition(def); err != nil {
		return nil, err
	}

	record, err := s.records.Create("", puzzleName, def)
	if err != nil {
		return nil, fmt.Errorf("failed to create solve record: %w", err)
	}

	if maxNodes <= 0 {
		maxNodes = DefaultNodeLimit
	}

	// The run outlives the request context; the node cap bounds it instead.
	go s.runSolve(record.ID, def, maxNodes)

	return recordInfo(record), nil
}

// runSolve executes one tracked solve to completion and persists the record.
func (s *solverServiceImpl) runSolve(recordID string, def *board.Definition, maxNodes int) {
	b, err := def.Board()
	if err != nil {
		s.finishWithError(recordID, err)
		return
	}

	opts := []solver.Option{solver.WithNodeLimit(maxNodes)}
	if s.onProgress != nil {
		opts = append(opts, solver.WithProgress(func(p solver.Progress) {
			s.onProgress(ProgressEvent{
				SolveID:       recordID,
				Layer:         p.Layer,
				FrontierSize:  p.FrontierSize,
				NodesExplored: p.NodesExplored,
			})
		}))
	}

	started := time.Now()
	sol, err := solver.New(b, def.Player, def.ExitRow, opts...).Solve(context.Background())
	if err != nil {
		s.finishWithError(recordID, err)
		return
	}

	var finished *Record
	updateErr := s.records.Update(recordID, func(r *Record) {
		r.Status = StatusFinished
		r.Solvable = sol.Solvable
		r.Moves = sol.Moves
		r.NodesExplored = sol.NodesExplored
		r.Layers = sol.Layers
		r.FinishedAt = time.Now()
		r.Duration = time.Since(started)
		finished = r
	})
	if updateErr != nil {
		log.Printf("Warning: failed to update solve record %s: %v", recordID, updateErr)
		return
	}

	if err := s.records.Save(recordID); err != nil {
		log.Printf("Warning: failed to persist solve record %s: %v", recordID, err)
	}

	s.notifyFinished(finished)
}

// finishWithError marks a record as failed. A node-limit abort is a failure
// of the run, distinct from an exhaustive no-solution outcome.
func (s *solverServiceImpl) finishWithError(recordID string, cause error) {
	var finished *Record
	err := s.records.Update(recordID, func(r *Record) {
		r.Status = StatusFailed
		r.Error = cause.Error()
		r.FinishedAt = time.Now()
		finished = r
	})
	if err != nil {
		log.Printf("Warning: failed to mark solve record %s failed: %v", recordID, err)
		return
	}

	if err := s.records.Save(recordID); err != nil {
		log.Printf("Warning: failed to persist solve record %s: %v", recordID, err)
	}

	s.notifyFinished(finished)
}

func (s *solverServiceImpl) notifyFinished(r *Record) {
	if s.onFinished != nil && r != nil {
		s.onFinished(recordInfo(r))
	}
}

// GetSolve retrieves one solve record.
func (s *solverServiceImpl) GetSolve(ctx context.Context, solveID string) (*SolveInfo, error) {
	record, err := s.records.Get(solveID)
	if err != nil {
		return nil, fmt.Errorf("solve not found: %w", err)
	}
	return recordInfo(record), nil
}

// ListSolves returns all tracked solve records.
func (s *solverServiceImpl) ListSolves(ctx context.Context) ([]*SolveInfo, error) {
	records := s.records.List()
	result := make([]*SolveInfo, 0, len(records))
	for _, r := range records {
		result = append(result, recordInfo(r))
	}
	return result, nil
}

// DeleteSolve removes a solve record.
func (s *solverServiceImpl) DeleteSolve(ctx context.Context, solveID string) error {
	if err := s.records.Delete(solveID); err != nil {
		return fmt.Errorf("failed to delete solve %s: %w", solveID, err)
	}
	return nil
}

// recordInfo converts a Record into its API representation.
func recordInfo(r *Record) *SolveInfo {
	return &SolveInfo{
		ID:            r.ID,
		PuzzleName:    r.PuzzleName,
		Status:        r.Status,
		Solvable:      r.Solvable,
		Moves:         moveDescriptions(r.Moves),
		MoveCount:     len(r.Moves),
		NodesExplored: r.NodesExplored,
		Layers:        r.Layers,
		Error:         r.Error,
		CreatedAt:     r.CreatedAt,
		FinishedAt:    r.FinishedAt,
		DurationMS:    r.Duration.Milliseconds(),
	}
}

func moveDescriptions(moves []solver.Move) []string {
	if moves == nil {
		return nil
	}
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Description()
	}
	return out
}
