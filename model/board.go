package model

import (
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-lifelike/rules"
)

const (
	// AliveProbability is the chance of a cell being alive after Randomize
	AliveProbability = 0.2

	historySize = 5
)

// Board owns a fixed size toroidal grid and the ruleset that advances it
type Board struct {
	grid       *Grid
	ruleset    *rules.Ruleset
	pool       *GridPool
	rng        *rand.Rand
	workers    int
	generation int
	history    []string // hashes of recent generations for cycle detection
}

// Option configures a Board at construction
type Option func(*Board)

// WithRand sets the random source used by Randomize and InjectRandomLife
func WithRand(r *rand.Rand) Option {
	return func(b *Board) { b.rng = r }
}

// WithSeed seeds a deterministic random source
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewPCG(uint64(seed), 0)))
}

// WithPool recycles back buffers through pool
func WithPool(pool *GridPool) Option {
	return func(b *Board) { b.pool = pool }
}

// WithWorkers splits each generation sweep into n row bands computed in parallel
func WithWorkers(n int) Option {
	return func(b *Board) { b.workers = n }
}

// NewBoard creates a width x height board with every cell dead
func NewBoard(width, height int, ruleset *rules.Ruleset, opts ...Option) *Board {
	if ruleset == nil {
		panic("model: NewBoard requires a ruleset")
	}
	b := &Board{
		grid:    NewGrid(width, height),
		ruleset: ruleset,
		workers: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if b.workers < 1 {
		b.workers = 1
	}
	return b
}

// Width returns the number of columns
func (b *Board) Width() int { return b.grid.width }

// Height returns the number of rows
func (b *Board) Height() int { return b.grid.height }

// Generation returns how many generations have been computed since the last load
func (b *Board) Generation() int { return b.generation }

// Ruleset returns the active ruleset
func (b *Board) Ruleset() *rules.Ruleset { return b.ruleset }

// SetRuleset swaps the active ruleset. It applies from the next generation on.
func (b *Board) SetRuleset(ruleset *rules.Ruleset) {
	if ruleset == nil {
		panic("model: SetRuleset requires a ruleset")
	}
	b.ruleset = ruleset
}

// CellAt returns the state of a cell. Coordinates must be inside the board.
func (b *Board) CellAt(x, y int) CellState {
	return b.grid.Get(x, y)
}

// SetCell writes a cell. Coordinates must be inside the board.
func (b *Board) SetCell(x, y int, state CellState) {
	b.grid.Set(x, y, state)
}

// ToggleCell flips a cell between dead and alive
func (b *Board) ToggleCell(x, y int) {
	b.grid.Set(x, y, b.grid.Get(x, y).Toggle())
}

// Clear kills every cell
func (b *Board) Clear() {
	b.grid.Clear()
	b.history = nil
}

// Randomize makes each cell independently alive with probability AliveProbability
func (b *Board) Randomize() {
	for y := range b.grid.height {
		for x := range b.grid.width {
			state := Dead
			if b.rng.Float64() < AliveProbability {
				state = Alive
			}
			b.grid.cells[y][x] = state
		}
	}
	b.history = nil
}

/*
NextGeneration advances the board by one generation.

Every cell is computed from the current grid into a separate buffer, which
replaces the current grid only once all cells are done. With more than one
worker the rows are split into bands and joined before the swap.
*/
func (b *Board) NextGeneration() {
	next := b.pool.Get(b.grid.width, b.grid.height)

	if b.workers > 1 && b.grid.height > 1 {
		b.sweepParallel(next)
	} else {
		b.sweepRows(next, 0, b.grid.height)
	}

	prev := b.grid
	b.grid = next
	b.pool.Put(prev)
	b.generation++
}

func (b *Board) sweepRows(next *Grid, startRow, endRow int) {
	cur, ruleset := b.grid, b.ruleset
	for y := startRow; y < endRow; y++ {
		for x := range cur.width {
			next.cells[y][x] = ruleset.Apply(cur.cells[y][x], cur.CountNeighbors(x, y))
		}
	}
}

func (b *Board) sweepParallel(next *Grid) {
	var (
		eg            errgroup.Group
		height        = b.grid.height
		numWorkers    = min(b.workers, height)
		rowsPerWorker = (height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}

		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("rows %d-%d: %v", startRow, endRow, r)
				}
			}()
			b.sweepRows(next, startRow, endRow)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		panic(fmt.Sprintf("model: generation sweep failed: %v", err))
	}
}

// CountLivingCells returns the total number of living cells
func (b *Board) CountLivingCells() int {
	return b.grid.CountLivingCells()
}

// Hash returns a digest of the current grid
func (b *Board) Hash() string {
	return b.grid.Hash()
}

// UpdateHistory records the current grid and reports whether it repeats one
// of the last three recorded generations (static, or a cycle of period <= 3).
func (b *Board) UpdateHistory() (stagnant bool) {
	current := b.grid.Hash()
	for i := 1; i <= 3 && i <= len(b.history); i++ {
		if b.history[len(b.history)-i] == current {
			stagnant = true
			break
		}
	}

	b.history = append(b.history, current)
	if len(b.history) > historySize {
		b.history = b.history[1:]
	}
	return stagnant
}

// InjectRandomLife brings count random cells to life
func (b *Board) InjectRandomLife(count int) {
	for range count {
		b.grid.cells[b.rng.IntN(b.grid.height)][b.rng.IntN(b.grid.width)] = Alive
	}
}

// ResetWithInterestingPatterns randomizes the board and stamps a few known shapes on top
func (b *Board) ResetWithInterestingPatterns() {
	b.Randomize()

	w, h := b.grid.width, b.grid.height
	if w >= 10 && h >= 10 {
		b.Stamp(5, 5, Glider)
		if w >= 20 && h >= 15 {
			b.Stamp(w-8, 5, Glider)
		}

		b.Stamp(w/4, h/4, Blinker)
		if w >= 30 {
			b.Stamp(3*w/4, 3*h/4, Blinker)
		}
	}
	b.generation = 0
}
