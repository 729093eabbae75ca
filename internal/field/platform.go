// Package field manages the live set of platforms: seeding the start of a
// run, generating new platforms ahead of the camera and retiring those that
// have fallen far behind it.
package field

import (
	"fmt"
	"time"

	"github.com/vovakirdan/typejump/internal/core"
)

// Handle identifies a platform in the manager's arena. Handles are cheap to
// copy and safe to keep after the platform is retired: Lookup then reports
// the platform as gone instead of returning a reused slot.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h was never issued by a manager.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("platform#%d.%d", h.index, h.gen)
}

// Less orders handles by slot so iteration results are deterministic.
func (h Handle) Less(o Handle) bool {
	if h.index != o.index {
		return h.index < o.index
	}
	return h.gen < o.gen
}

// State is the activation state of a platform.
type State uint8

const (
	Inactive State = iota // Not solid; the player falls through
	Active                // Solid from above
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Platform is a horizontal ledge. X and Y are the centre in world units.
type Platform struct {
	handle Handle
	X, Y   float64
	Width  float64
	Height float64

	state         State
	letter        rune
	cooldownUntil time.Duration
}

// Handle returns the platform's identity.
func (p *Platform) Handle() Handle {
	return p.handle
}

// State returns the activation state.
func (p *Platform) State() State {
	return p.state
}

// Active reports whether the platform is solid.
func (p *Platform) Active() bool {
	return p.state == Active
}

// Activate makes the platform solid. It reports whether the state changed;
// activation is irreversible.
func (p *Platform) Activate() bool {
	if p.state == Active {
		return false
	}
	p.state = Active
	return true
}

// Letter returns the assigned letter, if any.
func (p *Platform) Letter() (rune, bool) {
	return p.letter, p.letter != 0
}

// SetLetter records the letter that unlocks the platform. The activation
// state is left alone, so an Active platform is never demoted.
func (p *Platform) SetLetter(r rune) {
	p.letter = r
}

// CooldownUntil returns the session time until which collisions stay off.
func (p *Platform) CooldownUntil() time.Duration {
	return p.cooldownUntil
}

// SetCooldownUntil records the end of a pass-through window.
func (p *Platform) SetCooldownUntil(t time.Duration) {
	p.cooldownUntil = t
}

// Box returns the collision box.
func (p *Platform) Box() core.Box {
	return core.BoxAt(p.X, p.Y, p.Width, p.Height)
}

// Top returns the y-coordinate of the walkable surface.
func (p *Platform) Top() float64 {
	return p.Y - p.Height/2
}
