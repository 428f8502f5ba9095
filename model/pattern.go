package model

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/rules"
)

/*
Pattern files are line oriented text:

	#Name:<arbitrary string>
	#Rulestring:<B.../S...>
	<height rows of width characters, '*' alive and '.' dead>

Row r of the body is board row y = r and column c is x = c, the same order
the grid is drawn on screen.
*/
const (
	namePrefix       = "#Name:"
	rulestringPrefix = "#Rulestring:"

	aliveChar = '*'
	deadChar  = '.'

	maxLineSize = 1 << 20
)

var (
	// ErrFormat matches every pattern decoding failure
	ErrFormat = errors.New("invalid pattern")
	// ErrMalformedHeader means the #Name or #Rulestring line is missing or misplaced
	ErrMalformedHeader = errors.WithMessage(ErrFormat, "malformed header")
	// ErrIrregularGrid means the body is empty, ragged, has stray characters or does not fit the board
	ErrIrregularGrid = errors.WithMessage(ErrFormat, "irregular grid")
)

// Pattern is the decoded content of a pattern file
type Pattern struct {
	Name       string
	Rulestring string
	Width      int
	Height     int
	Cells      [][]CellState // indexed [y][x]
}

// DecodePattern reads a pattern and checks that its body is rectangular
func DecodePattern(r io.Reader) (*Pattern, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	name, err := headerLine(scanner, namePrefix)
	if err != nil {
		return nil, err
	}
	rulestring, err := headerLine(scanner, rulestringPrefix)
	if err != nil {
		return nil, err
	}
	if _, err = rules.Parse(rulestring); err != nil {
		return nil, errors.Wrap(err, "[DecodePattern] header rulestring")
	}

	p := &Pattern{Name: name, Rulestring: rulestring}
	blank := 0
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			blank++
			continue
		}
		if blank > 0 {
			return nil, errors.Wrapf(ErrIrregularGrid, "[DecodePattern] blank line before row %d", p.Height+blank)
		}

		row, err := decodeRow(line)
		if err != nil {
			return nil, errors.Wrapf(err, "[DecodePattern] row %d", p.Height)
		}
		if p.Height == 0 {
			p.Width = len(row)
		} else if len(row) != p.Width {
			return nil, errors.Wrapf(ErrIrregularGrid, "[DecodePattern] row %d has %d cells, expected %d", p.Height, len(row), p.Width)
		}
		p.Cells = append(p.Cells, row)
		p.Height++
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[DecodePattern] failed to read pattern")
	}
	if p.Height == 0 {
		return nil, errors.Wrap(ErrIrregularGrid, "[DecodePattern] pattern has no rows")
	}
	return p, nil
}

// ParsePattern decodes a pattern held in a string
func ParsePattern(text string) (*Pattern, error) {
	return DecodePattern(strings.NewReader(text))
}

func headerLine(scanner *bufio.Scanner, prefix string) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", errors.Wrap(err, "[DecodePattern] failed to read header")
		}
		return "", errors.Wrapf(ErrMalformedHeader, "[DecodePattern] missing %s line", prefix)
	}
	line := strings.TrimSuffix(scanner.Text(), "\r")
	value, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return "", errors.Wrapf(ErrMalformedHeader, "[DecodePattern] expected %s line, got %q", prefix, line)
	}
	return strings.TrimSpace(value), nil
}

func decodeRow(line string) ([]CellState, error) {
	row := make([]CellState, len(line))
	for x := 0; x < len(line); x++ {
		switch line[x] {
		case aliveChar:
			row[x] = Alive
		case deadChar:
			row[x] = Dead
		default:
			return nil, errors.Wrapf(ErrIrregularGrid, "unexpected character %q at column %d", line[x], x)
		}
	}
	return row, nil
}

// Encode writes the pattern in file form
func (p *Pattern) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(namePrefix)
	bw.WriteString(sanitizeName(p.Name))
	bw.WriteByte('\n')
	bw.WriteString(rulestringPrefix)
	bw.WriteString(p.Rulestring)
	bw.WriteByte('\n')

	line := make([]byte, p.Width+1)
	line[p.Width] = '\n'
	for y := range p.Height {
		for x := range p.Width {
			line[x] = deadChar
			if p.Cells[y][x] == Alive {
				line[x] = aliveChar
			}
		}
		bw.Write(line)
	}
	return errors.Wrap(bw.Flush(), "[Encode] failed to write pattern")
}

func (p *Pattern) String() string {
	var buf bytes.Buffer
	_ = p.Encode(&buf)
	return buf.String()
}

// names share a line with the header prefix
func sanitizeName(name string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, name))
}

// Pattern snapshots the board under the given name
func (b *Board) Pattern(name string) *Pattern {
	cells := make([][]CellState, b.grid.height)
	for y := range cells {
		cells[y] = append([]CellState(nil), b.grid.cells[y]...)
	}
	return &Pattern{
		Name:       name,
		Rulestring: b.ruleset.Rulestring(),
		Width:      b.grid.width,
		Height:     b.grid.height,
		Cells:      cells,
	}
}

// ExportPattern serializes the board and its rulestring
func (b *Board) ExportPattern(name string) string {
	return b.Pattern(name).String()
}

// WritePattern serializes the board to w
func (b *Board) WritePattern(w io.Writer, name string) error {
	return b.Pattern(name).Encode(w)
}

// ImportPattern replaces the grid and ruleset with the ones in text
func (b *Board) ImportPattern(text string) (*Pattern, error) {
	return b.ReadPattern(strings.NewReader(text))
}

// ReadPattern decodes a pattern from r and loads it. On any error the board is left untouched.
func (b *Board) ReadPattern(r io.Reader) (*Pattern, error) {
	p, err := DecodePattern(r)
	if err != nil {
		return nil, err
	}
	if err = b.Load(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Load replaces the grid and ruleset with the pattern's. The pattern must match the board size.
func (b *Board) Load(p *Pattern) error {
	if p.Width != b.grid.width || p.Height != b.grid.height || len(p.Cells) != p.Height {
		return errors.Wrapf(ErrIrregularGrid, "[Load] pattern is %dx%d, board is %dx%d",
			p.Width, p.Height, b.grid.width, b.grid.height)
	}
	for y, row := range p.Cells {
		if len(row) != p.Width {
			return errors.Wrapf(ErrIrregularGrid, "[Load] row %d has %d cells, expected %d", y, len(row), p.Width)
		}
		for x, state := range row {
			if state != Dead && state != Alive {
				return errors.Wrapf(ErrIrregularGrid, "[Load] cell (%d,%d) has state %d", x, y, state)
			}
		}
	}
	ruleset, err := rules.Lookup(p.Rulestring)
	if err != nil {
		return errors.Wrap(err, "[Load] pattern rulestring")
	}

	b.grid.copyFrom(p.Cells)
	b.ruleset = ruleset
	b.generation = 0
	b.history = nil
	return nil
}
