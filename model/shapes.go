package model

// Shape is a small pattern of live cells given as offsets from its top-left corner
type Shape [][2]int

var (
	// Glider travels one cell diagonally every four generations under Conway's Life
	Glider = Shape{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}

	// Blinker is a period 2 oscillator, horizontal in this phase
	Blinker = Shape{{0, 0}, {1, 0}, {2, 0}}
)

// Stamp brings the cells of shape to life with its corner at (x, y), wrapping around the edges
func (b *Board) Stamp(x, y int, shape Shape) {
	for _, offset := range shape {
		b.grid.SetWrapped(x+offset[0], y+offset[1], Alive)
	}
}
