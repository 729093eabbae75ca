// Package camera implements the vertical view that follows the climber.
// The view only ever moves up; falling behind it is how a run ends.
package camera

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/typejump/internal/config"
)

// Camera tracks the scroll offset (world y of the view's top edge).
type Camera struct {
	scrollY   float64
	target    float64
	height    float64
	anchor    float64
	smoothing float32 // seconds
	tween     *gween.Tween
}

// New creates a camera showing [scrollY, scrollY+viewHeight].
func New(cfg config.CameraConfig, viewHeight, scrollY float64) *Camera {
	return &Camera{
		scrollY:   scrollY,
		target:    scrollY,
		height:    viewHeight,
		anchor:    cfg.Anchor,
		smoothing: float32(cfg.Smoothing.Seconds()),
	}
}

// ScrollY returns the world y of the top edge of the view.
func (c *Camera) ScrollY() float64 {
	return c.scrollY
}

// Height returns the visible height in world units.
func (c *Camera) Height() float64 {
	return c.height
}

// Bottom returns the world y of the bottom edge of the view.
func (c *Camera) Bottom() float64 {
	return c.scrollY + c.height
}

// Follow moves the view toward keeping playerY at the anchor line. Only
// upward targets are taken; the move is eased over the smoothing window.
func (c *Camera) Follow(playerY, dt float64) {
	if want := playerY - c.anchor*c.height; want < c.target {
		c.target = want
		if c.smoothing <= 0 {
			c.scrollY = want
			c.tween = nil
			return
		}
		c.tween = gween.New(float32(c.scrollY), float32(want), c.smoothing, ease.OutQuad)
	}

	if c.tween == nil {
		return
	}
	v, done := c.tween.Update(float32(dt))
	if done {
		c.scrollY = c.target
		c.tween = nil
		return
	}
	if y := float64(v); y < c.scrollY {
		c.scrollY = y
	}
}
