package rules

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MaxNeighbors is the neighbor count of a cell on an 8-connected grid
const MaxNeighbors = 8

// ErrInvalidRulestring is returned when a rulestring does not match B<digits>/S<digits>
var ErrInvalidRulestring = errors.New("invalid rulestring")

// CountSet is a set of neighbor counts in [0, 8], one bit per count
type CountSet uint16

// NewCountSet builds a set from the given counts
func NewCountSet(counts ...int) CountSet {
	var s CountSet
	for _, n := range counts {
		s |= 1 << uint(n)
	}
	return s
}

// Contains reports whether n is in the set
func (s CountSet) Contains(n int) bool {
	return n >= 0 && n <= MaxNeighbors && s&(1<<uint(n)) != 0
}

// Counts returns the members of the set in ascending order
func (s CountSet) Counts() []int {
	counts := make([]int, 0, MaxNeighbors+1)
	for n := 0; n <= MaxNeighbors; n++ {
		if s.Contains(n) {
			counts = append(counts, n)
		}
	}
	return counts
}

func (s CountSet) String() string {
	var sb strings.Builder
	for _, n := range s.Counts() {
		sb.WriteByte(byte('0' + n))
	}
	return sb.String()
}

// Ruleset is an immutable birth/survival rule. Share it by pointer.
type Ruleset struct {
	rule       Rule
	name       string
	rulestring string
	birth      CountSet
	survival   CountSet
}

/*
Parse builds a custom Ruleset from a rulestring in birth/survival notation.

Both parts are required, digits may come in any order and repeats have no
extra effect. "B2/S" is valid: no count keeps a live cell alive.
*/
func Parse(rulestring string) (*Ruleset, error) {
	birth, survival, err := parseCounts(rulestring)
	if err != nil {
		return nil, err
	}
	return newRuleset(Custom, rulestring, birth, survival), nil
}

func parseCounts(rulestring string) (CountSet, CountSet, error) {
	birthPart, survivalPart, ok := strings.Cut(rulestring, "/")
	if !ok {
		return 0, 0, errors.Wrapf(ErrInvalidRulestring, "[Parse] missing '/' in %q", rulestring)
	}

	birth, err := parsePart(birthPart, 'B')
	if err != nil {
		return 0, 0, errors.Wrapf(err, "[Parse] birth part of %q", rulestring)
	}
	survival, err := parsePart(survivalPart, 'S')
	if err != nil {
		return 0, 0, errors.Wrapf(err, "[Parse] survival part of %q", rulestring)
	}
	return birth, survival, nil
}

func parsePart(part string, marker byte) (CountSet, error) {
	if len(part) == 0 || part[0] != marker {
		return 0, errors.Wrapf(ErrInvalidRulestring, "expected %q marker", marker)
	}

	var set CountSet
	for i := 1; i < len(part); i++ {
		c := part[i]
		if c < '0' || c > '0'+MaxNeighbors {
			return 0, errors.Wrapf(ErrInvalidRulestring, "unexpected character %q", c)
		}
		set |= 1 << uint(c-'0')
	}
	return set, nil
}

func newRuleset(rule Rule, name string, birth, survival CountSet) *Ruleset {
	rulestring := fmt.Sprintf("B%s/S%s", birth, survival)
	if name == "" {
		name = rulestring
	}
	return &Ruleset{
		rule:       rule,
		name:       name,
		rulestring: rulestring,
		birth:      birth,
		survival:   survival,
	}
}

// Apply returns the next state of a cell given its current state and live neighbor count
func (r *Ruleset) Apply(state CellState, neighbors int) CellState {
	if neighbors < 0 || neighbors > MaxNeighbors {
		panic(fmt.Sprintf("rules: neighbor count %d out of range [0, %d]", neighbors, MaxNeighbors))
	}
	if state == Alive {
		return stateOf(r.survival.Contains(neighbors))
	}
	return stateOf(r.birth.Contains(neighbors))
}

// Name returns the preset's display label, or the rulestring as given for custom rules
func (r *Ruleset) Name() string { return r.name }

// Rulestring returns the canonical B.../S... form with digits ascending
func (r *Ruleset) Rulestring() string { return r.rulestring }

// Rule returns the preset this ruleset was built from, or Custom
func (r *Ruleset) Rule() Rule { return r.rule }

// Birth returns the counts that bring a dead cell to life
func (r *Ruleset) Birth() CountSet { return r.birth }

// Survival returns the counts that keep a live cell alive
func (r *Ruleset) Survival() CountSet { return r.survival }

// Equal reports whether both rulesets make the same transitions
func (r *Ruleset) Equal(other *Ruleset) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.birth == other.birth && r.survival == other.survival
}

func (r *Ruleset) String() string {
	if r.rule == Custom {
		return r.rulestring
	}
	return fmt.Sprintf("%s (%s)", r.name, r.rulestring)
}
