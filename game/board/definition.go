package board

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// VehicleSpec is the descriptor form of one vehicle: a name, a model tag,
// and the anchor coordinate of its top-left-most cell.
type VehicleSpec struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// Definition is the JSON-level description of a puzzle.
type Definition struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	GridSize    int           `json:"grid_size"`
	ExitRow     int           `json:"exit_row"`
	Player      string        `json:"player"`
	Vehicles    []VehicleSpec `json:"vehicles"`
}

// ParseVehicleSpec parses a "name,model,x,y" descriptor.
func ParseVehicleSpec(s string) (VehicleSpec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return VehicleSpec{}, fmt.Errorf("vehicle descriptor %q: want name,model,x,y", s)
	}

	name := strings.TrimSpace(parts[0])
	model := strings.TrimSpace(parts[1])
	if name == "" {
		return VehicleSpec{}, fmt.Errorf("vehicle descriptor %q: empty name", s)
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return VehicleSpec{}, fmt.Errorf("vehicle descriptor %q: bad x coordinate: %v", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return VehicleSpec{}, fmt.Errorf("vehicle descriptor %q: bad y coordinate: %v", s, err)
	}

	switch model {
	case ModelHCar, ModelHBus, ModelVCar, ModelVBus:
	default:
		return VehicleSpec{}, fmt.Errorf("%w: %q in descriptor %q", ErrUnknownModel, model, s)
	}

	return VehicleSpec{Name: name, Model: model, X: x, Y: y}, nil
}

// ValidateDefinition validates a puzzle definition for correctness and
// solvability preconditions. It applies defaults for grid_size and exit_row
// before checking, then builds the board and runs the structural validator.
func ValidateDefinition(def *Definition) error {
	if def.Name == "" {
		return fmt.Errorf("puzzle validation: name is required")
	}
	if def.Player == "" {
		return fmt.Errorf("puzzle validation: player is required")
	}
	if len(def.Vehicles) == 0 {
		return fmt.Errorf("puzzle validation: at least one vehicle is required")
	}

	def.applyDefaults()

	if def.GridSize < BusLength {
		return fmt.Errorf("puzzle validation: grid_size must be at least %d, got %d", BusLength, def.GridSize)
	}
	if def.ExitRow < 1 || def.ExitRow > def.GridSize {
		return fmt.Errorf("puzzle validation: exit_row must be between 1 and %d, got %d", def.GridSize, def.ExitRow)
	}

	b, err := def.Board()
	if err != nil {
		return fmt.Errorf("puzzle validation: %v", err)
	}
	if err := b.Validate(def.Player, def.ExitRow); err != nil {
		return err
	}

	return nil
}

// Board builds the starting board described by the definition.
func (d *Definition) Board() (Board, error) {
	d.applyDefaults()

	vehicles := make([]Vehicle, 0, len(d.Vehicles))
	for _, spec := range d.Vehicles {
		v, err := NewVehicle(spec.Model, spec.Name, spec.X, spec.Y)
		if err != nil {
			return Board{}, err
		}
		vehicles = append(vehicles, v)
	}

	return New(d.GridSize, vehicles), nil
}

// Exit returns the exit cell: the rightmost column on the exit row.
func (d *Definition) Exit() Position {
	d.applyDefaults()
	return Position{X: d.GridSize, Y: d.ExitRow}
}

func (d *Definition) applyDefaults() {
	if d.GridSize == 0 {
		d.GridSize = DefaultSize
	}
	if d.ExitRow == 0 {
		d.ExitRow = DefaultExitRow
	}
}

// LoadDefinition loads and validates a puzzle definition from a JSON file.
func LoadDefinition(filename string) (*Definition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle file %q: %w", filename, err)
	}

	if err := ValidateDefinition(&def); err != nil {
		return nil, err
	}

	return &def, nil
}
