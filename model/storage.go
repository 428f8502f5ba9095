package model

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// PatternExt is the file extension of saved patterns
const PatternExt = ".life"

// ErrIO matches failures reading or writing pattern files
var ErrIO = errors.New("pattern i/o")

type ioError struct {
	op   string
	path string
	err  error
}

func (e *ioError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.op, e.path, e.err)
}

func (e *ioError) Unwrap() error { return e.err }

func (e *ioError) Is(target error) bool { return target == ErrIO }

// PatternStore saves and loads pattern files in a directory
type PatternStore struct {
	Dir string
	now func() time.Time
}

// NewPatternStore returns a store rooted at dir. The directory is created on the first save.
func NewPatternStore(dir string) *PatternStore {
	return &PatternStore{Dir: dir, now: time.Now}
}

// Save writes the board to a new <unix-timestamp>.life file and returns its path.
// An empty name defaults to the timestamp.
func (s *PatternStore) Save(b *Board, name string) (string, error) {
	stamp := strconv.FormatInt(s.now().Unix(), 10)
	if name == "" {
		name = stamp
	}

	var buf bytes.Buffer
	if err := b.WritePattern(&buf, name); err != nil {
		return "", errors.Wrapf(err, "[Save] failed to encode pattern %q", name)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		log.Printf("could not save pattern %q: %v", name, err)
		return "", errors.Wrapf(&ioError{"mkdir", s.Dir, err}, "[Save] failed to create directory")
	}

	path, err := s.create(stamp, buf.Bytes())
	if err != nil {
		log.Printf("could not save pattern %q: %v", name, err)
		return "", errors.Wrapf(err, "[Save] failed to write pattern %q", name)
	}
	log.Printf("pattern %q saved to %s", name, path)
	return path, nil
}

// create writes data to <stamp>.life, or <stamp>-N.life when that name is taken
func (s *PatternStore) create(stamp string, data []byte) (string, error) {
	for i := 0; ; i++ {
		base := stamp
		if i > 0 {
			base = fmt.Sprintf("%s-%d", stamp, i)
		}
		path := filepath.Join(s.Dir, base+PatternExt)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", &ioError{"create", path, err}
		}

		_, err = f.Write(data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
			return "", &ioError{"write", path, err}
		}
		return path, nil
	}
}

// Load imports the pattern file at path into the board. The board is unchanged on failure.
func (s *PatternStore) Load(path string, b *Board) (*Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("could not open pattern %s: %v", path, err)
		return nil, errors.Wrap(&ioError{"open", path, err}, "[Load] failed to open pattern")
	}
	defer f.Close()

	p, err := b.ReadPattern(f)
	if err != nil {
		log.Printf("could not load pattern %s: %v", path, err)
		return nil, errors.Wrapf(err, "[Load] failed to load %s", path)
	}
	log.Printf("loaded %q with rulestring %s", p.Name, p.Rulestring)
	return p, nil
}

// Latest returns the path of the most recently modified pattern in the store
func (s *PatternStore) Latest() (string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return "", errors.Wrap(&ioError{"read", s.Dir, err}, "[Latest] failed to list patterns")
	}

	var (
		latest     string
		latestTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PatternExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime()
		if latest == "" || mod.After(latestTime) || (mod.Equal(latestTime) && entry.Name() > filepath.Base(latest)) {
			latest = filepath.Join(s.Dir, entry.Name())
			latestTime = mod
		}
	}
	if latest == "" {
		return "", errors.Wrap(&ioError{"find", s.Dir, os.ErrNotExist}, "[Latest] no saved patterns")
	}
	return latest, nil
}
