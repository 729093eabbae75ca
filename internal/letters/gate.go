// Package letters implements the typing gate: the pool of letters in play,
// which platform waits on which letter, and how a keystroke unlocks them.
package letters

import (
	"math/rand"
	"slices"
	"strings"
	"unicode"

	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/field"
)

// DefaultPool is the alphabet a run starts with.
const DefaultPool = "ABCD"

// Result is the outcome of one keystroke.
type Result struct {
	Correct   bool
	Letter    rune
	Activated []field.Handle // Platforms unlocked by a correct key, in slot order
}

// Gate owns the letter pool, the set of letters currently waited on and the
// platform-to-letter assignments.
type Gate struct {
	rng      *rand.Rand
	pool     []rune
	needed   map[rune]struct{}
	assigned map[field.Handle]*field.Platform
}

// NewGate creates a gate whose pool starts as initial, upper-cased with
// duplicates and non-letters dropped. An empty result falls back to DefaultPool.
func NewGate(initial string, rng *rand.Rand) *Gate {
	g := &Gate{
		rng:      rng,
		needed:   make(map[rune]struct{}),
		assigned: make(map[field.Handle]*field.Platform),
	}
	for _, r := range strings.ToUpper(initial) {
		if r < 'A' || r > 'Z' || slices.Contains(g.pool, r) || len(g.pool) == config.MaxPoolSize {
			continue
		}
		g.pool = append(g.pool, r)
	}
	if len(g.pool) == 0 {
		g.pool = []rune(DefaultPool)
	}
	return g
}

// AssignLetter picks a letter uniformly from the pool for p and marks it as
// needed. Several platforms may share a letter.
func (g *Gate) AssignLetter(p *field.Platform) rune {
	letter := g.pool[g.rng.Intn(len(g.pool))]
	p.SetLetter(letter)
	g.assigned[p.Handle()] = p
	if !p.Active() {
		g.needed[letter] = struct{}{}
	}
	return letter
}

// HandleKeyPress resolves a keystroke. A needed letter activates every live
// platform that carries it and stops being needed; anything else, including
// a pool letter with nothing left to unlock, is incorrect.
func (g *Gate) HandleKeyPress(key rune) Result {
	key = unicode.ToUpper(key)
	res := Result{Letter: key}

	if _, ok := g.needed[key]; !ok {
		return res
	}
	delete(g.needed, key)
	res.Correct = true

	for h, p := range g.assigned {
		if l, _ := p.Letter(); l == key && p.Activate() {
			res.Activated = append(res.Activated, h)
		}
	}
	slices.SortFunc(res.Activated, func(a, b field.Handle) int {
		if a.Less(b) {
			return -1
		}
		if b.Less(a) {
			return 1
		}
		return 0
	})
	return res
}

// ExpandPool adds the first letter of the alphabet not yet in the pool. It
// reports false once the pool holds all 26 letters.
func (g *Gate) ExpandPool() bool {
	if len(g.pool) >= config.MaxPoolSize {
		return false
	}
	for r := 'A'; r <= 'Z'; r++ {
		if !slices.Contains(g.pool, r) {
			g.pool = append(g.pool, r)
			return true
		}
	}
	return false
}

// RemovePlatform forgets a retired platform. The needed set is not touched:
// a letter stays needed until it is typed or reassigned.
func (g *Gate) RemovePlatform(p *field.Platform) {
	delete(g.assigned, p.Handle())
}

// Pool returns the letters in play, in the order they joined the pool.
func (g *Gate) Pool() string {
	return string(g.pool)
}

// PoolSize returns the number of letters in play.
func (g *Gate) PoolSize() int {
	return len(g.pool)
}

// Needed returns the letters waiting to be typed, sorted.
func (g *Gate) Needed() []rune {
	out := make([]rune, 0, len(g.needed))
	for r := range g.needed {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// IsNeeded reports whether typing r would unlock platforms.
func (g *Gate) IsNeeded(r rune) bool {
	_, ok := g.needed[unicode.ToUpper(r)]
	return ok
}

// LetterOf returns the letter assigned to a live platform.
func (g *Gate) LetterOf(h field.Handle) (rune, bool) {
	p, ok := g.assigned[h]
	if !ok {
		return 0, false
	}
	return p.Letter()
}

// Assigned returns how many live platforms carry a letter.
func (g *Gate) Assigned() int {
	return len(g.assigned)
}
