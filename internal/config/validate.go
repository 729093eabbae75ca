package config

import (
	"errors"
	"fmt"
)

// MaxPoolSize is the number of letters in the alphabet.
const MaxPoolSize = 26

// Validate checks that the configuration describes a playable field at the
// default tick rate. All problems are reported together.
func (c GameConfig) Validate() error {
	return c.ValidateAt(DefaultTickRate)
}

// ValidateAt is Validate for a run simulated at tickRate. Jump heights are
// checked against the arc the physics world integrates at that rate.
func (c GameConfig) ValidateAt(tickRate int) error {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	p := c.Physics
	check(p.Gravity > 0, "physics.gravity must be positive, got %v", p.Gravity)
	check(p.JumpImpulse > 0, "physics.jump_impulse must be positive, got %v", p.JumpImpulse)
	check(p.MoveSpeed >= 0, "physics.move_speed must not be negative, got %v", p.MoveSpeed)
	check(p.PlayerWidth > 0 && p.PlayerHeight > 0, "physics player size must be positive, got %vx%v", p.PlayerWidth, p.PlayerHeight)

	w := c.World
	check(w.Width > 0, "world.width must be positive, got %v", w.Width)
	check(w.ViewHeight > 0, "world.view_height must be positive, got %v", w.ViewHeight)
	check(w.CellSize > 0, "world.cell_size must be positive, got %v", w.CellSize)

	f := c.Field
	jump := p.JumpApex(tickRate)
	check(f.PlatformHeight > 0, "field.platform_height must be positive, got %v", f.PlatformHeight)
	check(f.InitialCount >= 0, "field.initial_count must not be negative, got %d", f.InitialCount)
	check(f.InitialStride > 0, "field.initial_stride must be positive, got %v", f.InitialStride)
	check(f.InitialStride <= jump, "field.initial_stride %v exceeds the jump apex %.1f at %d ticks/s", f.InitialStride, jump, tickRate)
	check(f.MinStride > 0 && f.MinStride <= f.MaxStride, "field stride range [%v, %v] is invalid", f.MinStride, f.MaxStride)
	check(f.MaxStride <= jump, "field.max_stride %v exceeds the jump apex %.1f at %d ticks/s", f.MaxStride, jump, tickRate)
	check(p.HorizontalReach(f.MaxStride, tickRate) >= p.PlayerWidth,
		"physics.move_speed %v cannot carry the player %v units sideways onto a platform %v higher", p.MoveSpeed, p.PlayerWidth, f.MaxStride)
	check(f.MinWidth > 0 && f.MinWidth <= f.MaxWidth, "field width range [%v, %v] is invalid", f.MinWidth, f.MaxWidth)
	check(f.InitialMinWidth > 0 && f.InitialMinWidth <= f.InitialMaxWidth, "field initial width range [%v, %v] is invalid", f.InitialMinWidth, f.InitialMaxWidth)
	check(f.MaxWidth <= w.Width && f.InitialMaxWidth <= w.Width && f.StartWidth <= w.Width, "field platform widths must fit the world width %v", w.Width)
	check(f.SpawnMinX >= 0 && f.SpawnMinX <= f.SpawnMaxX && f.SpawnMaxX <= w.Width, "field spawn range [%v, %v] must lie within [0, %v]", f.SpawnMinX, f.SpawnMaxX, w.Width)
	check(f.GenerationMargin >= 0, "field.generation_margin must not be negative, got %v", f.GenerationMargin)
	// A platform must not be retired until it is below the fatal line, and a
	// freshly generated one must never fall inside the retire window.
	check(f.RetireMargin > w.ViewHeight+c.Session.GameOverBuffer,
		"field.retire_margin %v must exceed view_height + game_over_buffer (%v)", f.RetireMargin, w.ViewHeight+c.Session.GameOverBuffer)
	check(f.GenerationMargin+f.RetireMargin > f.MaxStride,
		"field margins %v + %v could generate and retire a platform in one tick", f.GenerationMargin, f.RetireMargin)

	if err := validatePool(c.Letters.InitialPool); err != nil {
		errs = append(errs, err)
	}

	s := c.Session
	check(s.ScoreScale > 0, "session.score_scale must be positive, got %v", s.ScoreScale)
	check(s.MilestoneInterval > 0, "session.milestone_interval must be positive, got %d", s.MilestoneInterval)
	check(s.Cooldown >= 0, "session.cooldown must not be negative, got %v", s.Cooldown)
	check(s.GameOverBuffer >= 0, "session.game_over_buffer must not be negative, got %v", s.GameOverBuffer)

	check(c.Camera.Anchor > 0 && c.Camera.Anchor < 1, "camera.anchor must be in (0, 1), got %v", c.Camera.Anchor)
	check(c.Camera.Smoothing >= 0, "camera.smoothing must not be negative, got %v", c.Camera.Smoothing)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
}

func validatePool(pool string) error {
	if pool == "" {
		return errors.New("letters.initial_pool must not be empty")
	}
	if len(pool) > MaxPoolSize {
		return fmt.Errorf("letters.initial_pool has %d letters, max is %d", len(pool), MaxPoolSize)
	}
	seen := make(map[rune]bool, len(pool))
	for _, r := range pool {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("letters.initial_pool contains %q, only A-Z are allowed", r)
		}
		if seen[r] {
			return fmt.Errorf("letters.initial_pool repeats %q", r)
		}
		seen[r] = true
	}
	return nil
}
