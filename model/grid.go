package model

import (
	"crypto/md5"
	"fmt"

	"github.com/sheikhrachel/go-lifelike/rules"
)

// CellState is the binary state of a single cell
type CellState = rules.CellState

const (
	Dead  = rules.Dead
	Alive = rules.Alive
)

// Grid is a fixed size toroidal field of cells, indexed cells[y][x]
type Grid struct {
	width  int
	height int
	cells  [][]CellState
}

// NewGrid creates a grid with the specified dimensions, all cells dead
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("model: invalid grid size %dx%d", width, height))
	}
	g := &Grid{}
	g.Reset(width, height)
	return g
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Reset resizes the grid if needed and kills every cell
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height

	if len(g.cells) != height {
		g.cells = make([][]CellState, height)
	}
	for y := range g.cells {
		if len(g.cells[y]) != width {
			g.cells[y] = make([]CellState, width)
			continue
		}
		clear(g.cells[y])
	}
}

// Clear kills every cell
func (g *Grid) Clear() {
	for y := range g.cells {
		clear(g.cells[y])
	}
}

func (g *Grid) mustContain(x, y int) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("model: cell (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
}

// Set writes a cell. Coordinates must be inside the grid.
func (g *Grid) Set(x, y int, state CellState) {
	g.mustContain(x, y)
	g.cells[y][x] = state
}

// Get returns the state of a cell. Coordinates must be inside the grid.
func (g *Grid) Get(x, y int) CellState {
	g.mustContain(x, y)
	return g.cells[y][x]
}

// SetWrapped writes a cell, wrapping coordinates around both edges
func (g *Grid) SetWrapped(x, y int, state CellState) {
	g.cells[wrap(y, g.height)][wrap(x, g.width)] = state
}

func wrap(v, n int) int {
	return (v%n + n) % n
}

// CountNeighbors counts the live cells among the 8 neighbors of (x, y).
// Both axes wrap, so edge and corner cells also have 8 neighbors.
func (g *Grid) CountNeighbors(x, y int) int {
	var (
		up    = g.cells[wrap(y-1, g.height)]
		row   = g.cells[y]
		down  = g.cells[wrap(y+1, g.height)]
		left  = wrap(x-1, g.width)
		right = wrap(x+1, g.width)
	)
	return int(up[left]) + int(up[x]) + int(up[right]) +
		int(row[left]) + int(row[right]) +
		int(down[left]) + int(down[x]) + int(down[right])
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			count += int(g.cells[y][x])
		}
	}
	return
}

// copyFrom copies cells from src, which must have the same dimensions
func (g *Grid) copyFrom(src [][]CellState) {
	for y := range g.cells {
		copy(g.cells[y], src[y])
	}
}

// Hash returns an MD5 digest of the grid state
func (g *Grid) Hash() string {
	h := md5.New()
	for y := range g.height {
		row := make([]byte, g.width)
		for x := range g.width {
			row[x] = byte(g.cells[y][x])
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
