package board

import (
	"errors"
	"fmt"
)

// Orientation represents the axis a vehicle slides along.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

const (
	// DefaultSize is the classic Rush Hour grid edge length.
	DefaultSize = 6

	// DefaultExitRow is the row the exit sits on in the classic puzzle.
	DefaultExitRow = 3

	// CarLength and BusLength are the only legal vehicle lengths.
	CarLength = 2
	BusLength = 3
)

// Vehicle model tags accepted by NewVehicle and puzzle definitions.
const (
	ModelHCar = "hcar"
	ModelHBus = "hbus"
	ModelVCar = "vcar"
	ModelVBus = "vbus"
)

// ErrUnknownModel is returned when a vehicle model tag is not one of
// hcar, hbus, vcar, vbus.
var ErrUnknownModel = errors.New("board: unknown vehicle model")

// Position is a 1-indexed grid coordinate. X is the column, Y the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vehicle is one rectangular piece. Cells are ordered from the low end of
// the axis to the high end and are contiguous along Orientation.
type Vehicle struct {
	Name        string      `json:"name"`
	Orientation Orientation `json:"orientation"`
	Cells       []Position  `json:"cells"`
}

// NewVehicle constructs a vehicle from a model tag, a name, and the anchor
// coordinate of its top-left-most cell. The cell sequence steps from the
// anchor in the positive direction of the orientation's axis.
func NewVehicle(model, name string, x, y int) (Vehicle, error) {
	var orientation Orientation
	var length int

	switch model {
	case ModelHCar:
		orientation, length = Horizontal, CarLength
	case ModelHBus:
		orientation, length = Horizontal, BusLength
	case ModelVCar:
		orientation, length = Vertical, CarLength
	case ModelVBus:
		orientation, length = Vertical, BusLength
	default:
		return Vehicle{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}

	cells := make([]Position, length)
	for i := 0; i < length; i++ {
		if orientation == Horizontal {
			cells[i] = Position{X: x + i, Y: y}
		} else {
			cells[i] = Position{X: x, Y: y + i}
		}
	}

	return Vehicle{Name: name, Orientation: orientation, Cells: cells}, nil
}

// Length returns the number of cells the vehicle occupies.
func (v Vehicle) Length() int {
	return len(v.Cells)
}

// Anchor returns the vehicle's top-left-most cell.
func (v Vehicle) Anchor() Position {
	return v.Cells[0]
}

// Occupies reports whether the vehicle covers the given cell.
func (v Vehicle) Occupies(p Position) bool {
	for _, c := range v.Cells {
		if c == p {
			return true
		}
	}
	return false
}

// Shifted returns a copy of the vehicle with every cell translated by
// (dx, dy). The original vehicle is not modified.
func (v Vehicle) Shifted(dx, dy int) Vehicle {
	cells := make([]Position, len(v.Cells))
	for i, c := range v.Cells {
		cells[i] = Position{X: c.X + dx, Y: c.Y + dy}
	}
	return Vehicle{Name: v.Name, Orientation: v.Orientation, Cells: cells}
}

// Row returns the row of the vehicle's anchor cell. For horizontal vehicles
// every cell shares this row.
func (v Vehicle) Row() int {
	return v.Cells[0].Y
}
