package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/JaredCorduan/rush-hour-solver/game/archive"
	"github.com/JaredCorduan/rush-hour-solver/game/board"
	"github.com/JaredCorduan/rush-hour-solver/game/puzzle"
	"github.com/JaredCorduan/rush-hour-solver/game/service"
)

func TestConstants(t *testing.T) {
	if Version != "1.0.0" {
		t.Errorf("Expected version 1.0.0, got %s", Version)
	}

	if AppName != "Rush Hour Solver" {
		t.Errorf("Expected app name 'Rush Hour Solver', got %s", AppName)
	}
}

func TestGetPuzzleDirDefault(t *testing.T) {
	t.Setenv("PUZZLE_DIR", "")
	if dir := getPuzzleDirDefault(); dir != "puzzles" {
		t.Errorf("Expected 'puzzles', got %q", dir)
	}

	t.Setenv("PUZZLE_DIR", "/custom/puzzles")
	if dir := getPuzzleDirDefault(); dir != "/custom/puzzles" {
		t.Errorf("Expected env override, got %q", dir)
	}
}

// resolveWith parses the given CLI args and runs resolveDefinition on them.
func resolveWith(t *testing.T, args ...string) (*board.Definition, error) {
	t.Helper()

	var def *board.Definition
	var resolveErr error

	cmd := &cli.Command{
		Name:                      "test",
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "puzzle"},
			&cli.StringFlag{Name: "puzzle-dir", Value: "puzzles"},
			&cli.StringSliceFlag{Name: "car"},
			&cli.StringFlag{Name: "player-car", Value: "R"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			def, resolveErr = resolveDefinition(cmd)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), append([]string{"test"}, args...)); err != nil {
		t.Fatalf("Command run failed: %v", err)
	}

	return def, resolveErr
}

func TestResolveDefinition_InlineCars(t *testing.T) {
	def, err := resolveWith(t,
		"--car", "R,hcar,1,3",
		"--car", "b,vcar,5,2",
	)
	if err != nil {
		t.Fatalf("resolveDefinition failed: %v", err)
	}

	if def.Name != "inline" {
		t.Errorf("Expected inline definition, got %q", def.Name)
	}
	if def.Player != "R" || len(def.Vehicles) != 2 {
		t.Fatalf("Unexpected definition: %+v", def)
	}
	if def.GridSize != board.DefaultSize || def.ExitRow != board.DefaultExitRow {
		t.Errorf("Expected defaults applied, got grid=%d exit=%d", def.GridSize, def.ExitRow)
	}

	// Each descriptor must survive flag parsing as one comma-separated value.
	want := []board.VehicleSpec{
		{Name: "R", Model: board.ModelHCar, X: 1, Y: 3},
		{Name: "b", Model: board.ModelVCar, X: 5, Y: 2},
	}
	for i, spec := range def.Vehicles {
		if spec != want[i] {
			t.Errorf("Vehicle %d: expected %+v, got %+v", i, want[i], spec)
		}
	}
}

func TestResolveDefinition_InlineInvalidDescriptor(t *testing.T) {
	_, err := resolveWith(t, "--car", "R,sedan,1,3")
	if err == nil {
		t.Error("Expected error for unknown model")
	}
}

func TestResolveDefinition_InlineInvalidBoard(t *testing.T) {
	// Player car is missing from the inline descriptors.
	_, err := resolveWith(t, "--car", "a,hcar,1,1", "--player-car", "R")
	if err == nil {
		t.Error("Expected validation error for missing player")
	}
}

func TestResolveDefinition_PuzzleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "direct.json")

	content := `{
		"name": "direct",
		"player": "R",
		"vehicles": [
			{"name": "R", "model": "hcar", "x": 1, "y": 3}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write puzzle file: %v", err)
	}

	def, err := resolveWith(t, "--puzzle", path)
	if err != nil {
		t.Fatalf("resolveDefinition failed: %v", err)
	}
	if def.Name != "direct" {
		t.Errorf("Expected puzzle loaded from file, got %q", def.Name)
	}
}

func TestResolveDefinition_Library(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"name": "lib",
		"player": "R",
		"vehicles": [
			{"name": "R", "model": "hcar", "x": 1, "y": 3}
		]
	}`
	if err := os.WriteFile(filepath.Join(dir, "lib.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write puzzle file: %v", err)
	}

	def, err := resolveWith(t, "--puzzle-dir", dir, "--puzzle", "lib")
	if err != nil {
		t.Fatalf("resolveDefinition failed: %v", err)
	}
	if def.Name != "lib" {
		t.Errorf("Expected library puzzle, got %q", def.Name)
	}
}

func TestResolveDefinition_MissingFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "typo.json")

	_, err := resolveWith(t, "--puzzle-dir", dir, "--puzzle", missing)
	if err == nil {
		t.Fatal("Expected error for a missing puzzle file")
	}

	// The error names both interpretations: the file path and the library.
	if !strings.Contains(err.Error(), missing) || !strings.Contains(err.Error(), dir) {
		t.Errorf("Expected the error to mention the file and the puzzle directory, got %q", err.Error())
	}
}

func TestResolveDefinition_Default(t *testing.T) {
	// Empty library falls back to the built-in classic puzzle.
	def, err := resolveWith(t, "--puzzle-dir", t.TempDir())
	if err != nil {
		t.Fatalf("resolveDefinition failed: %v", err)
	}
	if def.Name != "classic" {
		t.Errorf("Expected classic default, got %q", def.Name)
	}
}

func TestBuildRouter(t *testing.T) {
	puzzleManager, err := puzzle.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	solverService := service.NewSolverService(archive.NewManager(), puzzleManager)

	router := buildRouter(solverService, nil, "http://localhost:0")

	// The API server is mounted at the root.
	req := httptest.NewRequest("GET", "/api/puzzles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/puzzles: expected 200, got %d", w.Code)
	}

	// The MCP endpoint only accepts POST.
	req = httptest.NewRequest("GET", "/mcp", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /mcp: expected 405, got %d", w.Code)
	}
}

func TestServerFlags(t *testing.T) {
	flags := serverFlags()
	if len(flags) != 4 {
		t.Fatalf("Expected 4 shared server flags, got %d", len(flags))
	}

	names := map[string]bool{}
	for _, f := range flags {
		for _, name := range f.Names() {
			names[name] = true
		}
	}
	for _, want := range []string{"host", "port", "puzzle-dir", "archive-dir"} {
		if !names[want] {
			t.Errorf("Expected flag %q", want)
		}
	}
}
