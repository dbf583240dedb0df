package board

import (
	"fmt"
	"sort"
	"strings"
)

// Board is an immutable snapshot of all vehicle positions on an N×N grid.
// Vehicles are kept sorted by name so that equality, hashing, and move
// enumeration are independent of insertion order.
type Board struct {
	size     int
	vehicles []Vehicle
}

// New creates a board of the given grid size from a set of vehicles. The
// input slice is copied and sorted by vehicle name; the caller's slice is
// never retained. New does not validate the position — see Validate.
func New(size int, vehicles []Vehicle) Board {
	if size <= 0 {
		size = DefaultSize
	}

	vs := make([]Vehicle, len(vehicles))
	copy(vs, vehicles)
	sort.Slice(vs, func(i, j int) bool { return vs[i].Name < vs[j].Name })

	return Board{size: size, vehicles: vs}
}

// Size returns the grid edge length.
func (b Board) Size() int {
	return b.size
}

// Vehicles returns a copy of the board's vehicles, sorted by name.
func (b Board) Vehicles() []Vehicle {
	vs := make([]Vehicle, len(b.vehicles))
	copy(vs, b.vehicles)
	return vs
}

// Vehicle looks up a vehicle by name.
func (b Board) Vehicle(name string) (Vehicle, bool) {
	for _, v := range b.vehicles {
		if v.Name == name {
			return v, true
		}
	}
	return Vehicle{}, false
}

// InBounds reports whether the cell lies inside the grid.
func (b Board) InBounds(p Position) bool {
	return p.X >= 1 && p.X <= b.size && p.Y >= 1 && p.Y <= b.size
}

// Occupied returns the union of all vehicles' cells.
func (b Board) Occupied() map[Position]bool {
	occ := make(map[Position]bool, len(b.vehicles)*BusLength)
	for _, v := range b.vehicles {
		for _, c := range v.Cells {
			occ[c] = true
		}
	}
	return occ
}

// WithVehicle returns a new board where the vehicle with the same name is
// replaced by v. All other vehicles are unchanged and the receiver is not
// modified.
func (b Board) WithVehicle(v Vehicle) Board {
	vs := make([]Vehicle, len(b.vehicles))
	copy(vs, b.vehicles)
	for i := range vs {
		if vs[i].Name == v.Name {
			vs[i] = v
			break
		}
	}
	return Board{size: b.size, vehicles: vs}
}

// Key returns a canonical representation of the board's content. Two boards
// holding the same set of (name, orientation, cells) triples produce the
// same key regardless of how the vehicles were ordered at construction,
// which makes it safe to use as a visited-set key during search.
func (b Board) Key() string {
	var sb strings.Builder
	for i, v := range b.vehicles {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(v.Name)
		sb.WriteByte(':')
		sb.WriteByte(v.Orientation[0])
		for _, c := range v.Cells {
			fmt.Fprintf(&sb, ":%d,%d", c.X, c.Y)
		}
	}
	return sb.String()
}

// Equal reports whether two boards hold the same vehicle content.
func (b Board) Equal(other Board) bool {
	return b.size == other.size && b.Key() == other.Key()
}
