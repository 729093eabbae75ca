// Package physics moves the player through the platform field using a
// resolv broadphase. Platforms are one-way: they only catch a falling
// player from above, and only while their collision is enabled.
package physics

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/field"
	"github.com/vovakirdan/typejump/internal/player"
)

const (
	tagPlayer   = "player"
	tagPlatform = "platform"

	// landingSlack lets a player resting exactly on a surface keep touching it.
	landingSlack = 0.5
)

// ContactFunc is asked whether a platform the player is about to land on
// should hold. Returning false lets the player pass through.
type ContactFunc = func(h field.Handle) bool

type platformBody struct {
	platform *field.Platform
	obj      *resolv.Object
	enabled  bool
}

// World is the collision space. The field is endless upward, so the resolv
// space only covers a window around the camera and bodies are re-projected
// into it on every step.
type World struct {
	space   *resolv.Space
	width   float64
	height  float64 // Height of the space window
	originY float64 // World y of the window's top edge
	gravity float64

	body      *player.Player
	bodyObj   *resolv.Object
	platforms map[field.Handle]*platformBody
	grounded  bool
}

// NewWorld creates an empty world for the configured play area.
func NewWorld(world config.WorldConfig, phys config.PhysicsConfig) *World {
	height := 3 * world.ViewHeight
	return &World{
		space:     resolv.NewSpace(int(world.Width), int(height), world.CellSize, world.CellSize),
		width:     world.Width,
		height:    height,
		gravity:   phys.Gravity,
		platforms: make(map[field.Handle]*platformBody),
	}
}

// AttachPlayer registers the body the world moves.
func (w *World) AttachPlayer(p *player.Player) {
	if w.bodyObj != nil {
		w.space.Remove(w.bodyObj)
	}
	pw, ph := p.Size()
	w.body = p
	w.bodyObj = resolv.NewObject(0, 0, pw, ph, tagPlayer)
	w.space.Add(w.bodyObj)
}

// PlatformCreated mirrors a new platform into the space.
func (w *World) PlatformCreated(p *field.Platform) {
	obj := resolv.NewObject(0, 0, p.Width, p.Height, tagPlatform)
	obj.Data = p.Handle()
	w.platforms[p.Handle()] = &platformBody{platform: p, obj: obj, enabled: true}
	w.space.Add(obj)
}

// PlatformRetired removes a platform from the space.
func (w *World) PlatformRetired(p *field.Platform) {
	b, ok := w.platforms[p.Handle()]
	if !ok {
		return
	}
	w.space.Remove(b.obj)
	delete(w.platforms, p.Handle())
}

// SetCollisionEnabled toggles whether a platform can catch the player.
// Unknown handles are ignored.
func (w *World) SetCollisionEnabled(h field.Handle, enabled bool) {
	if b, ok := w.platforms[h]; ok {
		b.enabled = enabled
	}
}

// CollisionEnabled reports whether a platform can catch the player.
func (w *World) CollisionEnabled(h field.Handle) bool {
	b, ok := w.platforms[h]
	return ok && b.enabled
}

// Grounded reports whether the last step ended with the player standing.
func (w *World) Grounded() bool {
	return w.grounded
}

// Bodies returns the number of platforms mirrored in the space.
func (w *World) Bodies() int {
	return len(w.platforms)
}

// Step integrates gravity and velocity over dt seconds. Every enabled
// platform the player would land on is offered to contact, nearest first,
// until one holds.
func (w *World) Step(dt float64, cameraY float64, contact ContactFunc) {
	if w.body == nil {
		return
	}
	p := w.body
	if p.Frozen() {
		w.grounded = false
		return
	}
	w.project(cameraY)

	// Horizontal: the world edges are walls.
	pw, ph := p.Size()
	p.Pos.X += p.Vel.X * dt
	if lo, hi := pw/2, w.width-pw/2; p.Pos.X < lo || p.Pos.X > hi {
		p.Pos.X = math.Max(lo, math.Min(hi, p.Pos.X))
		p.Vel.X = 0
	}
	w.place(w.bodyObj, p.Pos.X-pw/2, p.Pos.Y-ph/2)

	p.Vel.Y += w.gravity * dt
	dy := p.Vel.Y * dt
	w.grounded = false

	if dy >= 0 {
		if top, ok := w.landing(dy, contact); ok {
			p.Pos.Y = top - ph/2
			p.Vel.Y = 0
			w.grounded = true
			w.place(w.bodyObj, p.Pos.X-pw/2, p.Pos.Y-ph/2)
			return
		}
	}

	p.Pos.Y += dy
	w.place(w.bodyObj, p.Pos.X-pw/2, p.Pos.Y-ph/2)
}

// landing finds the surface the player's feet cross while moving down by dy.
func (w *World) landing(dy float64, contact ContactFunc) (float64, bool) {
	check := w.bodyObj.Check(0, dy+1, tagPlatform)
	if check == nil {
		return 0, false
	}

	bottom := w.bodyObj.Bottom()
	var candidates []*platformBody
	for _, obj := range check.ObjectsByTags(tagPlatform) {
		h, ok := obj.Data.(field.Handle)
		if !ok {
			continue
		}
		b, ok := w.platforms[h]
		if !ok || !b.enabled {
			continue
		}
		if obj.X >= w.bodyObj.X+w.bodyObj.W || w.bodyObj.X >= obj.X+obj.W {
			continue
		}
		if obj.Y < bottom-landingSlack || obj.Y > bottom+dy {
			continue
		}
		candidates = append(candidates, b)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].obj.Y < candidates[j].obj.Y
	})

	for _, b := range candidates {
		if contact == nil || contact(b.platform.Handle()) {
			return b.platform.Top(), true
		}
	}
	return 0, false
}

// project re-anchors the space window on the camera and moves every body
// to its window coordinates.
func (w *World) project(cameraY float64) {
	w.originY = cameraY - w.height/3
	for _, b := range w.platforms {
		p := b.platform
		w.place(b.obj, p.X-p.Width/2, p.Top())
	}
}

func (w *World) place(obj *resolv.Object, worldX, worldY float64) {
	obj.X = worldX
	obj.Y = worldY - w.originY
	obj.Update()
}
