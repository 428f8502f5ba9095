package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/sheikhrachel/go-lifelike/rules"
)

const blinkerPattern = `#Name:blinker
#Rulestring:B3/S23
.....
..*..
..*..
..*..
.....
`

func TestExportPattern(t *testing.T) {
	b := NewBoard(5, 5, conway())
	b.SetCell(2, 1, Alive)
	b.SetCell(2, 2, Alive)
	b.SetCell(2, 3, Alive)

	if got := b.ExportPattern("blinker"); got != blinkerPattern {
		t.Fatalf("ExportPattern =\n%s\nexpected\n%s", got, blinkerPattern)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, rulestring := range []string{"B3/S23", "B2/S", "B36/S125", "B/S"} {
		ruleset, err := rules.Lookup(rulestring)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", rulestring, err)
		}
		src := NewBoard(13, 7, ruleset, WithSeed(21))
		src.Randomize()
		text := src.ExportPattern("round trip")

		dst := NewBoard(13, 7, conway())
		p, err := dst.ImportPattern(text)
		if err != nil {
			t.Fatalf("ImportPattern returned error: %v", err)
		}
		if p.Name != "round trip" {
			t.Fatalf("name = %q", p.Name)
		}
		if dst.Hash() != src.Hash() {
			t.Fatalf("%s: imported grid differs from exported grid", rulestring)
		}
		if dst.Ruleset().Rulestring() != rulestring {
			t.Fatalf("imported rulestring = %q, expected %q", dst.Ruleset().Rulestring(), rulestring)
		}
		if dst.ExportPattern("round trip") != text {
			t.Fatal("export after import should be identical")
		}
	}
}

func TestImportResolvesPresets(t *testing.T) {
	b := NewBoard(5, 5, rules.MustForRule(rules.Maze))
	if _, err := b.ImportPattern(blinkerPattern); err != nil {
		t.Fatalf("ImportPattern returned error: %v", err)
	}
	if b.Ruleset() != rules.MustForRule(rules.ConwaysLife) {
		t.Fatalf("B3/S23 should load as the shared Conway preset, got %v", b.Ruleset())
	}
	expectAlive(t, b, map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}, "imported blinker")
}

func TestImportAcceptsCRLFAndMissingNewline(t *testing.T) {
	text := "#Name: spaced \r\n#Rulestring:B3/S23\r\n*.\r\n.*"
	b := NewBoard(2, 2, conway())
	p, err := b.ImportPattern(text)
	if err != nil {
		t.Fatalf("ImportPattern returned error: %v", err)
	}
	if p.Name != "spaced" {
		t.Fatalf("name = %q, expected trimmed %q", p.Name, "spaced")
	}
	expectAlive(t, b, map[[2]int]bool{{0, 0}: true, {1, 1}: true}, "crlf import")
}

func TestImportRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrMalformedHeader},
		{"missing rulestring", "#Name:x\n", ErrMalformedHeader},
		{"swapped headers", "#Rulestring:B3/S23\n#Name:x\n..\n..\n", ErrMalformedHeader},
		{"no name header", "#Rulestring:B3/S23\n..\n..\n", ErrMalformedHeader},
		{"bad rulestring", "#Name:x\n#Rulestring:B9/S23\n..\n..\n", rules.ErrInvalidRulestring},
		{"no rows", "#Name:x\n#Rulestring:B3/S23\n", ErrIrregularGrid},
		{"ragged", "#Name:x\n#Rulestring:B3/S23\n..\n.\n", ErrIrregularGrid},
		{"long row", "#Name:x\n#Rulestring:B3/S23\n..\n...\n", ErrIrregularGrid},
		{"stray character", "#Name:x\n#Rulestring:B3/S23\n.o\n..\n", ErrIrregularGrid},
		{"blank line inside", "#Name:x\n#Rulestring:B3/S23\n..\n\n..\n", ErrIrregularGrid},
		{"too small", "#Name:x\n#Rulestring:B3/S23\n.\n", ErrIrregularGrid},
		{"too tall", "#Name:x\n#Rulestring:B3/S23\n..\n..\n..\n", ErrIrregularGrid},
	}

	for _, tc := range cases {
		b := NewBoard(2, 2, rules.MustForRule(rules.Seeds))
		b.SetCell(1, 0, Alive)
		before := b.Hash()

		_, err := b.ImportPattern(tc.text)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: error = %v, expected %v", tc.name, err, tc.want)
		}
		if b.Hash() != before || b.Ruleset() != rules.MustForRule(rules.Seeds) {
			t.Fatalf("%s: failed import must leave the board untouched", tc.name)
		}
	}
}

func TestFormatErrorsShareErrFormat(t *testing.T) {
	for _, err := range []error{ErrMalformedHeader, ErrIrregularGrid} {
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("%v should match ErrFormat", err)
		}
	}
	if errors.Is(ErrMalformedHeader, ErrIrregularGrid) {
		t.Fatal("format errors should be distinguishable")
	}
}

func TestExportSanitizesName(t *testing.T) {
	b := NewBoard(1, 1, conway())
	text := b.ExportPattern("two\nlines")
	if !strings.HasPrefix(text, "#Name:two lines\n#Rulestring:B3/S23\n") {
		t.Fatalf("unexpected header:\n%s", text)
	}
	if _, err := NewBoard(1, 1, conway()).ImportPattern(text); err != nil {
		t.Fatalf("sanitized export should import: %v", err)
	}
}

func TestLoadRejectsInvalidCells(t *testing.T) {
	b := NewBoard(2, 1, conway())
	err := b.Load(&Pattern{Rulestring: "B3/S23", Width: 2, Height: 1, Cells: [][]CellState{{Alive, 7}}})
	if !errors.Is(err, ErrIrregularGrid) {
		t.Fatalf("error = %v, expected ErrIrregularGrid", err)
	}
	if b.CountLivingCells() != 0 {
		t.Fatal("failed load must leave the board untouched")
	}
}

func TestParsePatternDimensions(t *testing.T) {
	p, err := ParsePattern("#Name:wide\n#Rulestring:B3/S23\n*....\n....*\n")
	if err != nil {
		t.Fatalf("ParsePattern returned error: %v", err)
	}
	if p.Width != 5 || p.Height != 2 {
		t.Fatalf("size = %dx%d, expected 5x2", p.Width, p.Height)
	}
	if p.Cells[1][4] != Alive || p.Cells[0][0] != Alive || p.Cells[0][4] != Dead {
		t.Fatal("rows should map to y and columns to x")
	}
}
