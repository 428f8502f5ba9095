package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearCmd  = "clear"
	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer draws a board as text blocks, two columns per cell
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders the board, reading every cell once
func (r *TerminalRenderer) Display(b *Board) {
	w := bufio.NewWriter(r.out())
	defer w.Flush()

	for y := range b.Height() {
		for x := range b.Width() {
			if b.CellAt(x, y) == Alive {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
}

// Clear clears the terminal screen, falling back to an ANSI escape when the clear command is unavailable
func (r *TerminalRenderer) Clear() {
	out := r.out()
	if out != os.Stdout {
		fmt.Fprint(out, ansiClear)
		return
	}

	cmd := exec.Command(clearCmd)
	cmd.Stdout = out
	if err := cmd.Run(); err != nil {
		fmt.Fprint(out, ansiClear)
	}
}
