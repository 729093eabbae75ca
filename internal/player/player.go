// Package player holds the kinematic state of the climber.
package player

import (
	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/core"
)

// Intent is the directional input for one tick.
type Intent struct {
	Left  bool
	Right bool
	Jump  bool
}

// Player is the climber's position and velocity in world units. Whether it
// stands on something is decided by the physics world, not stored here.
type Player struct {
	Pos core.Vec2 // Centre
	Vel core.Vec2

	width, height float64
	moveSpeed     float64
	jumpImpulse   float64
	frozen        bool
}

// New creates a player centred at (x, y).
func New(cfg config.PhysicsConfig, x, y float64) *Player {
	return &Player{
		Pos:         core.Vec2{X: x, Y: y},
		width:       cfg.PlayerWidth,
		height:      cfg.PlayerHeight,
		moveSpeed:   cfg.MoveSpeed,
		jumpImpulse: cfg.JumpImpulse,
	}
}

// Update applies the intent to the velocity. Left wins over right when both
// are held. A jump only starts from the ground; it reports whether one did.
func (p *Player) Update(in Intent, grounded bool) bool {
	if p.frozen {
		return false
	}

	switch {
	case in.Left:
		p.Vel.X = -p.moveSpeed
	case in.Right:
		p.Vel.X = p.moveSpeed
	default:
		p.Vel.X = 0
	}

	if in.Jump && grounded {
		p.Vel.Y = -p.jumpImpulse
		return true
	}
	return false
}

// Freeze stops the player for good.
func (p *Player) Freeze() {
	p.frozen = true
	p.Vel = core.Vec2{}
}

// Frozen reports whether Freeze was called.
func (p *Player) Frozen() bool {
	return p.frozen
}

// Box returns the collision box.
func (p *Player) Box() core.Box {
	return core.BoxAt(p.Pos.X, p.Pos.Y, p.width, p.height)
}

// Bottom returns the y-coordinate of the player's feet.
func (p *Player) Bottom() float64 {
	return p.Pos.Y + p.height/2
}

// Size returns the player's width and height.
func (p *Player) Size() (w, h float64) {
	return p.width, p.height
}
