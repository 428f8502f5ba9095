package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/go-lifelike/model"
)

const help = "arrows/hjkl move  space toggle  n step  p run  r random  c clear  [ ] rule  u custom  s save  o open  q quit"

// Draw renders the board, the status line and the help line
func (e *Editor) Draw() {
	var (
		s           = e.screen
		base        = tcell.StyleDefault.Background(colorBase).Foreground(colorText)
		deadStyle   = tcell.StyleDefault.Background(colorSurface)
		aliveStyle  = tcell.StyleDefault.Background(colorIris)
		cursorDead  = tcell.StyleDefault.Background(colorHighlight)
		cursorAlive = tcell.StyleDefault.Background(colorGold)
	)

	sw, sh := s.Size()
	s.Fill(' ', base)

	rows := min(e.board.Height(), sh)
	cols := min(e.board.Width(), sw/cellWidth)
	for y := range rows {
		for x := range cols {
			isAlive := e.board.CellAt(x, y) == model.Alive
			isCursor := x == e.cursorX && y == e.cursorY
			style := deadStyle
			switch {
			case isCursor && isAlive:
				style = cursorAlive
			case isCursor:
				style = cursorDead
			case isAlive:
				style = aliveStyle
			}
			for i := range cellWidth {
				s.SetContent(x*cellWidth+i, y, ' ', nil, style)
			}
		}
	}

	line := rows
	drawText(s, 0, line, sw, base, e.status())
	line++

	switch {
	case e.prompting:
		drawText(s, 0, line, sw, base.Foreground(colorGold), "rulestring: "+string(e.prompt)+"_")
	case e.message != "" && e.messageErr:
		drawText(s, 0, line, sw, base.Foreground(colorLove), e.message)
	case e.message != "":
		drawText(s, 0, line, sw, base.Foreground(colorRose), e.message)
	default:
		drawText(s, 0, line, sw, base, help)
	}

	s.Show()
}

func (e *Editor) status() string {
	state := "paused"
	if e.running {
		state = "running"
	}
	ruleset := e.board.Ruleset()
	return fmt.Sprintf("gen %d | %s [%s] | living %d | %s",
		e.board.Generation(), ruleset.Name(), ruleset.Rulestring(), e.board.CountLivingCells(), state)
}

func drawText(s tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= maxWidth {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
