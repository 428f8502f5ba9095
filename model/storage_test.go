package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sheikhrachel/go-lifelike/rules"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStoreSaveLoad(t *testing.T) {
	store := NewPatternStore(filepath.Join(t.TempDir(), "saved"))
	store.now = fixedClock(time.Unix(1700000000, 0))

	src := NewBoard(12, 9, rules.MustForRule(rules.Bacteria), WithSeed(8))
	src.Randomize()

	path, err := store.Save(src, "")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if filepath.Base(path) != "1700000000.life" {
		t.Fatalf("saved to %s, expected 1700000000.life", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved pattern: %v", err)
	}
	if !strings.HasPrefix(string(data), "#Name:1700000000\n#Rulestring:B34/S456\n") {
		t.Fatalf("unexpected header:\n%s", data)
	}

	dst := NewBoard(12, 9, conway())
	p, err := store.Load(path, dst)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Name != "1700000000" || dst.Hash() != src.Hash() || dst.Ruleset() != src.Ruleset() {
		t.Fatal("Load should restore the saved board and ruleset")
	}
}

func TestStoreSaveDoesNotOverwrite(t *testing.T) {
	store := NewPatternStore(t.TempDir())
	store.now = fixedClock(time.Unix(42, 0))
	b := NewBoard(3, 3, conway())

	first, err := store.Save(b, "first")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	second, err := store.Save(b, "second")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if first == second {
		t.Fatal("saves within the same second must not overwrite each other")
	}
	if filepath.Base(second) != "42-1.life" {
		t.Fatalf("second save went to %s", second)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewPatternStore(t.TempDir())
	b := NewBoard(3, 3, conway())
	b.SetCell(1, 1, Alive)

	_, err := store.Load(filepath.Join(store.Dir, "missing.life"), b)
	if !errors.Is(err, ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, expected ErrIO wrapping os.ErrNotExist", err)
	}
	if b.CountLivingCells() != 1 {
		t.Fatal("failed load must leave the board untouched")
	}
}

func TestStoreLoadFormatError(t *testing.T) {
	store := NewPatternStore(t.TempDir())
	path := filepath.Join(store.Dir, "bad.life")
	if err := os.WriteFile(path, []byte("#Name:bad\n#Rulestring:B3/S23\n...\n..\n..\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBoard(3, 3, conway())
	_, err := store.Load(path, b)
	if !errors.Is(err, ErrIrregularGrid) || errors.Is(err, ErrIO) {
		t.Fatalf("error = %v, expected ErrIrregularGrid", err)
	}
}

func TestStoreLatest(t *testing.T) {
	store := NewPatternStore(t.TempDir())
	if _, err := store.Latest(); !errors.Is(err, ErrIO) {
		t.Fatalf("empty store error = %v, expected ErrIO", err)
	}

	b := NewBoard(3, 3, conway())
	base := time.Unix(1000, 0)
	var paths []string
	for i := range 3 {
		store.now = fixedClock(base.Add(time.Duration(i) * time.Hour))
		path, err := store.Save(b, "")
		if err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
		mod := base.Add(time.Duration(i) * time.Hour)
		if err = os.Chtimes(path, mod, mod); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	if err := os.WriteFile(filepath.Join(store.Dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	latest, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if latest != paths[2] {
		t.Fatalf("Latest = %s, expected %s", latest, paths[2])
	}
}

func TestStoreSaveUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewPatternStore(filepath.Join(blocker, "saved"))
	if _, err := store.Save(NewBoard(2, 2, conway()), "x"); !errors.Is(err, ErrIO) {
		t.Fatalf("error = %v, expected ErrIO", err)
	}
}
