// Package session runs a single climb. It owns the order of operations in a
// tick and the rules that turn physics contacts, keystrokes and the player's
// height into landings, pass-throughs, score and the end of the run.
package session

import (
	"math"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/field"
	"github.com/vovakirdan/typejump/internal/letters"
	"github.com/vovakirdan/typejump/internal/player"
)

// Physics moves the player and reports contacts with platforms.
type Physics interface {
	// Step advances one tick. contact is called for each platform the
	// player is about to land on; false lets the player through.
	Step(dt, cameraY float64, contact func(field.Handle) bool)
	Grounded() bool
	SetCollisionEnabled(h field.Handle, enabled bool)
}

// Camera is the view the run is measured against.
type Camera interface {
	ScrollY() float64
	Height() float64
}

// KeyOutcome is what a keystroke amounted to.
type KeyOutcome int

const (
	KeyIgnored KeyOutcome = iota
	KeyCorrect
	KeyIncorrect
)

// Deps are the collaborators of a controller. Gate is nil for a run where
// every platform is solid from the start.
type Deps struct {
	Field   *field.Manager
	Gate    *letters.Gate
	Player  *player.Player
	Physics Physics
	Camera  Camera
	Sink    Sink
}

// State is a snapshot of the run's counters.
type State struct {
	Score     int
	Correct   int
	Incorrect int
	Accuracy  float64
	Terminal  bool
	Elapsed   time.Duration
}

// Controller is the per-run state machine: Running until the player falls
// out of view, then Terminal for good.
type Controller struct {
	cfg     config.SessionConfig
	field   *field.Manager
	gate    *letters.Gate
	player  *player.Player
	physics Physics
	camera  Camera
	sink    Sink
	timers  scheduler

	now           time.Duration
	startY        float64
	score         int
	correct       int
	incorrect     int
	nextMilestone int
	terminal      bool
	wasGrounded   bool
	landed        bool
}

// New creates a controller for a run starting at the player's current position.
func New(cfg config.SessionConfig, d Deps) *Controller {
	sink := d.Sink
	if sink == nil {
		sink = nopSink{}
	}
	return &Controller{
		cfg:           cfg,
		field:         d.Field,
		gate:          d.Gate,
		player:        d.Player,
		physics:       d.Physics,
		camera:        d.Camera,
		sink:          sink,
		startY:        d.Player.Pos.Y,
		nextMilestone: cfg.MilestoneInterval,
		wasGrounded:   true, // The run starts standing on the start platform
	}
}

// Tick advances the run by dt. Order: due re-enables, player, field,
// physics contacts, score, termination, milestones.
func (c *Controller) Tick(in player.Intent, dt time.Duration) {
	if c.terminal {
		return
	}
	c.now += dt
	c.runDue()

	if c.player.Update(in, c.physics.Grounded()) {
		c.sink.Notify(Event{Kind: EventJump})
	}

	c.field.Update(c.camera.ScrollY())

	c.landed = false
	c.physics.Step(dt.Seconds(), c.camera.ScrollY(), c.onContact)
	c.wasGrounded = c.physics.Grounded()

	c.updateScore()

	if c.player.Pos.Y > c.camera.ScrollY()+c.camera.Height()+c.cfg.GameOverBuffer {
		c.Terminate()
		return
	}

	c.checkMilestones()
}

// HandleKey processes a typed key. Only a single ASCII letter counts toward
// accuracy. Digits, punctuation and multi-character payloads return
// KeyIgnored and leave the correct and incorrect counters untouched, as do
// keys after the run ended and keys in an ungated run.
func (c *Controller) HandleKey(key string) KeyOutcome {
	if c.terminal || c.gate == nil {
		return KeyIgnored
	}
	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) || r > unicode.MaxASCII || !unicode.IsLetter(r) {
		return KeyIgnored
	}

	res := c.gate.HandleKeyPress(r)
	if !res.Correct {
		c.incorrect++
		c.sink.Notify(Event{Kind: EventIncorrectKey, Letter: res.Letter})
		return KeyIncorrect
	}

	c.correct++
	c.sink.Notify(Event{Kind: EventCorrectKey, Letter: res.Letter})
	if len(res.Activated) > 0 {
		c.sink.Notify(Event{Kind: EventActivation, Letter: res.Letter, Platforms: res.Activated})
	}
	return KeyCorrect
}

// Terminate ends the run. Only the first call has any effect.
func (c *Controller) Terminate() {
	if c.terminal {
		return
	}
	c.terminal = true
	c.player.Freeze()
	c.timers.reset()
	c.sink.Notify(Event{
		Kind:      EventGameOver,
		Score:     c.score,
		Correct:   c.correct,
		Incorrect: c.incorrect,
		Accuracy:  c.Accuracy(),
	})
}

// onContact decides whether a platform holds the player.
func (c *Controller) onContact(h field.Handle) bool {
	if c.terminal {
		return false
	}
	p, ok := c.field.Lookup(h)
	if !ok {
		return false
	}

	if p.Active() {
		if !c.wasGrounded && !c.landed {
			c.sink.Notify(Event{Kind: EventLanding, Platforms: []field.Handle{h}})
		}
		c.landed = true
		return true
	}

	if c.now < p.CooldownUntil() {
		return false
	}
	p.SetCooldownUntil(c.now + c.cfg.Cooldown)
	c.physics.SetCollisionEnabled(h, false)
	c.timers.schedule(p.CooldownUntil(), h)
	c.sink.Notify(Event{Kind: EventPassThrough, Platforms: []field.Handle{h}})
	return false
}

// runDue restores collision on platforms whose pass-through window is over.
func (c *Controller) runDue() {
	for _, h := range c.timers.popDue(c.now) {
		p, ok := c.field.Lookup(h)
		if !ok || c.now < p.CooldownUntil() {
			continue
		}
		c.physics.SetCollisionEnabled(h, true)
	}
}

func (c *Controller) updateScore() {
	climbed := c.startY - c.player.Pos.Y
	if pts := int(math.Floor(climbed / c.cfg.ScoreScale)); pts > c.score {
		c.score = pts
	}
}

func (c *Controller) checkMilestones() {
	for c.cfg.MilestoneInterval > 0 && c.score >= c.nextMilestone {
		c.nextMilestone += c.cfg.MilestoneInterval
		if c.gate != nil && c.gate.ExpandPool() {
			c.sink.Notify(Event{Kind: EventPoolExpanded, Pool: c.gate.Pool(), Score: c.score})
		}
	}
}

// Score returns the best height reached, in points.
func (c *Controller) Score() int {
	return c.score
}

// Accuracy returns the share of correct keystrokes as a percentage, or 0
// before the first keystroke.
func (c *Controller) Accuracy() float64 {
	total := c.correct + c.incorrect
	if total == 0 {
		return 0
	}
	return float64(c.correct) / float64(total) * 100
}

// Terminal reports whether the run has ended.
func (c *Controller) Terminal() bool {
	return c.terminal
}

// Gated reports whether keystrokes drive platform activation.
func (c *Controller) Gated() bool {
	return c.gate != nil
}

// Now returns the simulated time since the run started.
func (c *Controller) Now() time.Duration {
	return c.now
}

// PendingReenables returns the number of scheduled collision restores.
func (c *Controller) PendingReenables() int {
	return c.timers.pending()
}

// State returns a snapshot of the counters.
func (c *Controller) State() State {
	return State{
		Score:     c.score,
		Correct:   c.correct,
		Incorrect: c.incorrect,
		Accuracy:  c.Accuracy(),
		Terminal:  c.terminal,
		Elapsed:   c.now,
	}
}
