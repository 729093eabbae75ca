package camera

import (
	"testing"
	"time"

	"github.com/vovakirdan/typejump/internal/config"
)

const dt = 1.0 / 60

func newTestCamera(smoothing time.Duration) *Camera {
	return New(config.CameraConfig{Anchor: 0.5, Smoothing: smoothing}, 600, 0)
}

func TestIgnoresPlayerBelowAnchor(t *testing.T) {
	c := newTestCamera(200 * time.Millisecond)

	c.Follow(510, dt) // Anchor line is at 300

	if c.ScrollY() != 0 {
		t.Errorf("ScrollY() = %v, expected 0", c.ScrollY())
	}
	if c.Bottom() != 600 {
		t.Errorf("Bottom() = %v, expected 600", c.Bottom())
	}
}

func TestFollowsUpwardWithEasing(t *testing.T) {
	c := newTestCamera(200 * time.Millisecond)

	c.Follow(140, dt) // Target scroll is 140 - 300 = -160

	if c.ScrollY() >= 0 || c.ScrollY() <= -160 {
		t.Errorf("ScrollY() = %v, expected partway toward -160", c.ScrollY())
	}

	for i := 0; i < 30; i++ {
		c.Follow(140, dt)
	}
	if c.ScrollY() != -160 {
		t.Errorf("ScrollY() = %v, expected to settle at -160", c.ScrollY())
	}
}

func TestNeverScrollsDown(t *testing.T) {
	c := newTestCamera(200 * time.Millisecond)

	prev := c.ScrollY()
	playerY := 500.0
	for i := 0; i < 600; i++ {
		// Climb for a while, then fall
		if i < 300 {
			playerY -= 3
		} else {
			playerY += 5
		}
		c.Follow(playerY, dt)

		if c.ScrollY() > prev {
			t.Fatalf("tick %d: ScrollY() went from %v down to %v", i, prev, c.ScrollY())
		}
		prev = c.ScrollY()
	}
}

func TestSnapsWithoutSmoothing(t *testing.T) {
	c := newTestCamera(0)

	c.Follow(40, dt)

	if c.ScrollY() != -260 {
		t.Errorf("ScrollY() = %v, expected -260", c.ScrollY())
	}
}
