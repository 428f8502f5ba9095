package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/rules"
)

const (
	// cellWidth is the number of terminal columns per cell, so cells look square
	cellWidth = 2

	defaultTick = 100 * time.Millisecond
)

var (
	colorBase      = tcell.NewRGBColor(35, 33, 54)
	colorSurface   = tcell.NewRGBColor(42, 39, 63)
	colorText      = tcell.NewRGBColor(224, 222, 244)
	colorLove      = tcell.NewRGBColor(235, 111, 146)
	colorGold      = tcell.NewRGBColor(246, 193, 119)
	colorRose      = tcell.NewRGBColor(234, 154, 151)
	colorIris      = tcell.NewRGBColor(196, 167, 231)
	colorHighlight = tcell.NewRGBColor(86, 82, 110)
)

// Editor is an interactive terminal front end for a board.
// It is the only goroutine that touches the board while Run is active.
type Editor struct {
	screen tcell.Screen
	board  *model.Board
	store  *model.PatternStore
	tick   time.Duration

	rule    rules.Rule
	cursorX int
	cursorY int
	running bool
	quit    bool

	prompt      []rune
	prompting   bool
	message     string
	messageErr  bool
	lastButtons tcell.ButtonMask
}

// New creates an editor drawing on an initialized screen. store may be nil to disable save and open.
func New(screen tcell.Screen, board *model.Board, store *model.PatternStore, tick time.Duration) *Editor {
	if tick <= 0 {
		tick = defaultTick
	}
	return &Editor{
		screen:  screen,
		board:   board,
		store:   store,
		tick:    tick,
		rule:    board.Ruleset().Rule(),
		cursorX: board.Width() / 2,
		cursorY: board.Height() / 2,
	}
}

// Run draws the board and handles input until the user quits or ctx is done
func (e *Editor) Run(ctx context.Context) error {
	e.screen.EnableMouse()
	defer e.screen.DisableMouse()

	var (
		events = make(chan tcell.Event)
		done   = make(chan struct{})
	)
	defer close(done)

	go func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	e.Draw()
	for !e.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			e.HandleEvent(ev)
		case <-ticker.C:
			if !e.running {
				continue
			}
			e.board.NextGeneration()
		}
		e.Draw()
	}
	return nil
}

// Done reports whether the user asked to quit
func (e *Editor) Done() bool { return e.quit }

// Running reports whether generations advance on every tick
func (e *Editor) Running() bool { return e.running }

// Cursor returns the cell under the cursor
func (e *Editor) Cursor() (int, int) { return e.cursorX, e.cursorY }

// Message returns the status message shown under the board
func (e *Editor) Message() string { return e.message }

// HandleEvent applies a single input event
func (e *Editor) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		if e.prompting {
			e.handlePromptKey(ev)
			return
		}
		e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	}
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		e.quit = true
	case tcell.KeyUp:
		e.moveCursor(0, -1)
	case tcell.KeyDown:
		e.moveCursor(0, 1)
	case tcell.KeyLeft:
		e.moveCursor(-1, 0)
	case tcell.KeyRight:
		e.moveCursor(1, 0)
	case tcell.KeyEnter:
		e.board.ToggleCell(e.cursorX, e.cursorY)
	case tcell.KeyRune:
		e.handleRune(ev.Rune())
	}
}

func (e *Editor) handleRune(r rune) {
	switch r {
	case 'q':
		e.quit = true
	case 'k':
		e.moveCursor(0, -1)
	case 'j':
		e.moveCursor(0, 1)
	case 'h':
		e.moveCursor(-1, 0)
	case 'l':
		e.moveCursor(1, 0)
	case ' ':
		e.board.ToggleCell(e.cursorX, e.cursorY)
	case 'n':
		e.board.NextGeneration()
	case 'p':
		e.running = !e.running
	case 'r':
		e.board.Randomize()
		e.setMessage("randomized")
	case 'c':
		e.board.Clear()
		e.setMessage("cleared")
	case ']':
		e.selectRule(e.rule.Next())
	case '[':
		e.selectRule(e.rule.Prev())
	case 'u':
		e.prompting = true
		e.prompt = e.prompt[:0]
		e.setMessage("")
	case 's':
		e.save()
	case 'o':
		e.open()
	}
}

func (e *Editor) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.prompting = false
	case tcell.KeyEnter:
		e.prompting = false
		ruleset, err := rules.NewCustom(string(e.prompt))
		if err != nil {
			e.setError(err)
			return
		}
		e.rule = ruleset.Rule()
		e.board.SetRuleset(ruleset)
		e.setMessage("rule set to " + ruleset.Rulestring())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.prompt) > 0 {
			e.prompt = e.prompt[:len(e.prompt)-1]
		}
	case tcell.KeyRune:
		e.prompt = append(e.prompt, ev.Rune())
	}
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && e.lastButtons&tcell.Button1 == 0
	e.lastButtons = buttons
	if !pressed {
		return
	}

	sx, sy := ev.Position()
	x, y := sx/cellWidth, sy
	if x < 0 || x >= e.board.Width() || y < 0 || y >= e.board.Height() {
		return
	}
	e.cursorX, e.cursorY = x, y
	e.board.ToggleCell(x, y)
}

func (e *Editor) moveCursor(dx, dy int) {
	w, h := e.board.Width(), e.board.Height()
	e.cursorX = (e.cursorX + dx + w) % w
	e.cursorY = (e.cursorY + dy + h) % h
}

func (e *Editor) selectRule(r rules.Rule) {
	ruleset, err := rules.ForRule(r)
	if err != nil {
		e.setError(err)
		return
	}
	e.rule = r
	e.board.SetRuleset(ruleset)
	e.setMessage("")
}

func (e *Editor) save() {
	if e.store == nil {
		e.setMessage("saving is disabled")
		return
	}
	path, err := e.store.Save(e.board, "")
	if err != nil {
		e.setError(err)
		return
	}
	e.setMessage("saved " + path)
}

func (e *Editor) open() {
	if e.store == nil {
		e.setMessage("loading is disabled")
		return
	}
	path, err := e.store.Latest()
	if err != nil {
		e.setError(err)
		return
	}
	p, err := e.store.Load(path, e.board)
	if err != nil {
		e.setError(err)
		return
	}
	e.rule = e.board.Ruleset().Rule()
	e.setMessage(fmt.Sprintf("loaded %q", p.Name))
}

func (e *Editor) setMessage(msg string) {
	e.message = msg
	e.messageErr = false
}

func (e *Editor) setError(err error) {
	e.message = err.Error()
	e.messageErr = true
}
