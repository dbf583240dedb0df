package board

import "strings"

// Render draws the board as one string per grid row. Empty cells are '.',
// occupied cells show the first byte of the owning vehicle's name.
func (b Board) Render() []string {
	grid := make([][]byte, b.size)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", b.size))
	}

	for _, v := range b.vehicles {
		mark := byte('?')
		if len(v.Name) > 0 {
			mark = v.Name[0]
		}
		for _, c := range v.Cells {
			if b.InBounds(c) {
				grid[c.Y-1][c.X-1] = mark
			}
		}
	}

	rows := make([]string, b.size)
	for y := range grid {
		rows[y] = string(grid[y])
	}
	return rows
}

// String renders the board as a newline-joined grid.
func (b Board) String() string {
	return strings.Join(b.Render(), "\n")
}
