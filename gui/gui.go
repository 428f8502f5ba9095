//go:build ebiten

package gui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/rules"
)

// Game adapts a board to the ebiten.Game interface
type Game struct {
	board *model.Board
	store *model.PatternStore
	opts  Options

	img    *ebiten.Image
	cells  []uint8
	pixels []byte

	rule    rules.Rule
	running bool
	ticks   int
}

func newGame(board *model.Board, store *model.PatternStore, opts Options) *Game {
	w, h := board.Width(), board.Height()
	return &Game{
		board:  board,
		store:  store,
		opts:   opts,
		img:    ebiten.NewImage(w, h),
		cells:  make([]uint8, w*h),
		pixels: make([]byte, w*h*4),
		rule:   board.Ruleset().Rule(),
	}
}

// Run opens a window on the board and blocks until it is closed
func Run(board *model.Board, store *model.PatternStore, opts Options) error {
	opts = opts.withDefaults()
	g := newGame(board, store, opts)

	ebiten.SetWindowTitle(g.title())
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(board.Width()*opts.Scale, board.Height()*opts.Scale)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[Run] window closed with error")
	}
	return nil
}

func (g *Game) title() string {
	return "go-lifelike - " + g.board.Ruleset().Name()
}

// Update handles per-frame input and advances the board while running
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.running = !g.running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.board.NextGeneration()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.board.Randomize()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.board.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.selectRule(g.rule.Next())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.selectRule(g.rule.Prev())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && g.store != nil {
		if _, err := g.store.Save(g.board, ""); err != nil {
			log.Printf("save failed: %v", err)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		x, y := cx/g.opts.Scale, cy/g.opts.Scale
		if x >= 0 && x < g.board.Width() && y >= 0 && y < g.board.Height() {
			g.board.ToggleCell(x, y)
		}
	}

	if g.running {
		g.ticks++
		if g.ticks >= g.opts.ticksPerGeneration() {
			g.ticks = 0
			g.board.NextGeneration()
		}
	}
	return nil
}

func (g *Game) selectRule(r rules.Rule) {
	ruleset, err := rules.ForRule(r)
	if err != nil {
		log.Printf("select rule: %v", err)
		return
	}
	g.rule = r
	g.board.SetRuleset(ruleset)
	ebiten.SetWindowTitle(g.title())
}

// Draw renders the current board, one scaled pixel per cell
func (g *Game) Draw(screen *ebiten.Image) {
	w := g.board.Width()
	for y := range g.board.Height() {
		for x := range w {
			g.cells[y*w+x] = uint8(g.board.CellAt(x, y))
		}
	}
	fillPixels(g.pixels, g.cells)
	g.img.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.opts.Scale), float64(g.opts.Scale))
	screen.DrawImage(g.img, op)
}

// Layout returns the logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.board.Width() * g.opts.Scale, g.board.Height() * g.opts.Scale
}
