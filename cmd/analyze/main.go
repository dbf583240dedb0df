// Command analyze prints quick, human-readable heuristics about puzzle
// files in the project's puzzles directory. It summarizes grid dimensions,
// vehicle counts, board occupancy, and highlights vertical vehicles parked
// between the player car and the exit.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// AnalysisVehicle is a light struct for reading vehicle entries used by analysis.
type AnalysisVehicle struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// AnalysisPuzzle is a light struct for reading puzzle files used by analysis.
type AnalysisPuzzle struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	GridSize    int               `json:"grid_size"`
	ExitRow     int               `json:"exit_row"`
	Player      string            `json:"player"`
	Vehicles    []AnalysisVehicle `json:"vehicles"`
}

func main() {
	puzzleDir := "puzzles"
	if len(os.Args) > 1 {
		puzzleDir = os.Args[1]
	}

	entries, err := os.ReadDir(puzzleDir)
	if err != nil {
		fmt.Printf("Error reading puzzle directory: %v\n", err)
		os.Exit(1)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", file)
		analyzePuzzle(filepath.Join(puzzleDir, file))
	}
}

func analyzePuzzle(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var puzzle AnalysisPuzzle
	if err := json.Unmarshal(data, &puzzle); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	if puzzle.GridSize == 0 {
		puzzle.GridSize = 6
	}
	if puzzle.ExitRow == 0 {
		puzzle.ExitRow = 3
	}

	fmt.Printf("Name: %s\n", puzzle.Name)
	fmt.Printf("Grid Size: %d x %d\n", puzzle.GridSize, puzzle.GridSize)
	fmt.Printf("Exit: right edge, row %d\n", puzzle.ExitRow)
	fmt.Printf("Player: %s\n", puzzle.Player)

	cars := 0
	buses := 0
	occupied := 0
	var playerX int
	foundPlayer := false

	for _, v := range puzzle.Vehicles {
		switch v.Model {
		case "hcar", "vcar":
			cars++
			occupied += 2
		case "hbus", "vbus":
			buses++
			occupied += 3
		default:
			fmt.Printf("⚠️  WARNING: vehicle %s has unknown model %q\n", v.Name, v.Model)
		}
		if v.Name == puzzle.Player {
			playerX = v.X
			foundPlayer = true
		}
	}

	cells := puzzle.GridSize * puzzle.GridSize
	fmt.Printf("Vehicles: %d (%d cars, %d buses)\n", len(puzzle.Vehicles), cars, buses)
	fmt.Printf("Occupancy: %d/%d cells (%.0f%%)\n",
		occupied, cells, 100*float64(occupied)/float64(cells))

	if !foundPlayer {
		fmt.Printf("⚠️  CRITICAL: player vehicle %q is not on the board!\n", puzzle.Player)
		return
	}

	// Vertical vehicles standing between the player car and the exit. Each
	// one has to be moved off the exit row before the player can pass.
	blockers := 0
	for _, v := range puzzle.Vehicles {
		length := 0
		switch v.Model {
		case "vcar":
			length = 2
		case "vbus":
			length = 3
		default:
			continue
		}
		if v.X <= playerX {
			continue
		}
		if v.Y <= puzzle.ExitRow && puzzle.ExitRow < v.Y+length {
			blockers++
			fmt.Printf("   Blocker: %s (%s) at (%d, %d) crosses the exit row\n",
				v.Name, v.Model, v.X, v.Y)
		}
	}

	if blockers == 0 {
		fmt.Printf("✅ The exit row is clear ahead of the player car\n")
	} else {
		fmt.Printf("⚠️  %d vehicle(s) must clear the exit row before the player can leave\n", blockers)
	}
}
