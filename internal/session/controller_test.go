package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/field"
	"github.com/vovakirdan/typejump/internal/letters"
	"github.com/vovakirdan/typejump/internal/player"
)

type toggle struct {
	h       field.Handle
	enabled bool
}

// fakePhysics offers a fixed list of contacts on every step and never moves
// the player.
type fakePhysics struct {
	grounded bool
	offer    []field.Handle
	disabled map[field.Handle]bool
	toggles  []toggle
	answers  []bool
}

func (f *fakePhysics) Step(dt, cameraY float64, contact func(field.Handle) bool) {
	f.grounded = false
	f.answers = f.answers[:0]
	for _, h := range f.offer {
		if f.disabled[h] {
			continue
		}
		ok := contact(h)
		f.answers = append(f.answers, ok)
		if ok {
			f.grounded = true
			break
		}
	}
}

func (f *fakePhysics) Grounded() bool { return f.grounded }

func (f *fakePhysics) SetCollisionEnabled(h field.Handle, enabled bool) {
	if f.disabled == nil {
		f.disabled = make(map[field.Handle]bool)
	}
	f.disabled[h] = !enabled
	f.toggles = append(f.toggles, toggle{h, enabled})
}

type fakeCamera struct {
	scrollY, height float64
}

func (c *fakeCamera) ScrollY() float64 { return c.scrollY }
func (c *fakeCamera) Height() float64  { return c.height }

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last(kind EventKind) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return Event{}, false
}

type harness struct {
	ctrl    *Controller
	field   *field.Manager
	gate    *letters.Gate
	player  *player.Player
	physics *fakePhysics
	camera  *fakeCamera
	events  *recorder
}

func newHarness(pool string) *harness {
	cfg := config.DefaultGameConfig()
	rng := rand.New(rand.NewSource(1))

	h := &harness{
		physics: &fakePhysics{},
		camera:  &fakeCamera{scrollY: 0, height: cfg.World.ViewHeight},
		events:  &recorder{},
		player:  player.New(cfg.Physics, 400, 510),
	}
	var fieldGate field.Gate
	if pool != "" {
		h.gate = letters.NewGate(pool, rng)
		fieldGate = h.gate
	}
	h.field = field.NewManager(cfg.Field, cfg.World.Width, field.ReachFrom(cfg.Physics, config.DefaultTickRate), rng, fieldGate)
	h.ctrl = New(cfg.Session, Deps{
		Field:   h.field,
		Gate:    h.gate,
		Player:  h.player,
		Physics: h.physics,
		Camera:  h.camera,
		Sink:    h.events,
	})
	return h
}

func (h *harness) tick(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		h.ctrl.Tick(player.Intent{}, dt)
	}
}

const step = 100 * time.Millisecond

func TestActiveContactLandsAndReportsOnce(t *testing.T) {
	h := newHarness("")
	plat := h.field.CreatePlatform(400, 200, 100)
	h.physics.offer = []field.Handle{plat.Handle()}

	h.tick(1, step) // Already standing at the start
	if len(h.physics.answers) != 1 || !h.physics.answers[0] {
		t.Fatalf("answers = %v, expected the Active platform to hold", h.physics.answers)
	}
	if h.events.count(EventLanding) != 0 {
		t.Error("standing still should not report a landing")
	}

	h.physics.offer = nil
	h.tick(1, step) // Airborne

	h.physics.offer = []field.Handle{plat.Handle()}
	h.tick(3, step)

	if n := h.events.count(EventLanding); n != 1 {
		t.Errorf("landing events = %d, expected 1", n)
	}
}

func TestInactiveContactStartsCooldown(t *testing.T) {
	h := newHarness("A")
	plat := h.field.CreatePlatform(400, 200, 100)
	h.physics.offer = []field.Handle{plat.Handle()}

	h.tick(1, step)

	if len(h.physics.answers) != 1 || h.physics.answers[0] {
		t.Fatalf("answers = %v, expected the Inactive platform to let go", h.physics.answers)
	}
	if want := []toggle{{plat.Handle(), false}}; len(h.physics.toggles) != 1 || h.physics.toggles[0] != want[0] {
		t.Fatalf("toggles = %v, expected %v", h.physics.toggles, want)
	}
	if plat.CooldownUntil() != 600*time.Millisecond {
		t.Errorf("CooldownUntil() = %v, expected 600ms", plat.CooldownUntil())
	}
	if h.ctrl.PendingReenables() != 1 {
		t.Errorf("PendingReenables() = %d, expected 1", h.ctrl.PendingReenables())
	}
	if n := h.events.count(EventPassThrough); n != 1 {
		t.Errorf("pass-through events = %d, expected 1", n)
	}

	h.physics.offer = nil
	h.tick(4, step) // now = 500ms
	if len(h.physics.toggles) != 1 {
		t.Fatalf("collision restored early: %v", h.physics.toggles)
	}

	h.tick(1, step) // now = 600ms
	if len(h.physics.toggles) != 2 || h.physics.toggles[1] != (toggle{plat.Handle(), true}) {
		t.Errorf("toggles = %v, expected collision restored at 600ms", h.physics.toggles)
	}
	if h.ctrl.PendingReenables() != 0 {
		t.Errorf("PendingReenables() = %d, expected 0", h.ctrl.PendingReenables())
	}
}

func TestContactDuringCooldownIsIgnored(t *testing.T) {
	h := newHarness("A")
	plat := h.field.CreatePlatform(400, 200, 100)

	if h.ctrl.onContact(plat.Handle()) {
		t.Fatal("Inactive platform should not hold")
	}
	// Re-entrant contact in the same window: no second cooldown
	if h.ctrl.onContact(plat.Handle()) {
		t.Fatal("Inactive platform should not hold")
	}

	if h.ctrl.PendingReenables() != 1 {
		t.Errorf("PendingReenables() = %d, expected 1", h.ctrl.PendingReenables())
	}
	if n := h.events.count(EventPassThrough); n != 1 {
		t.Errorf("pass-through events = %d, expected 1", n)
	}
}

func TestReenableSkipsRetiredPlatform(t *testing.T) {
	h := newHarness("A")
	plat := h.field.CreatePlatform(400, 200, 100)
	h.physics.offer = []field.Handle{plat.Handle()}
	h.tick(1, step)
	h.physics.offer = nil

	// Camera climbs far enough for the platform to retire
	h.camera.scrollY = -1000
	h.player.Pos.Y = -900
	h.tick(1, step)
	if _, ok := h.field.Lookup(plat.Handle()); ok {
		t.Fatal("platform should be retired")
	}

	h.tick(10, step)

	for _, tg := range h.physics.toggles {
		if tg.enabled {
			t.Errorf("collision restored on a retired platform: %v", tg)
		}
	}
	if h.ctrl.PendingReenables() != 0 {
		t.Errorf("PendingReenables() = %d, expected 0", h.ctrl.PendingReenables())
	}
}

func TestContactWithStaleHandle(t *testing.T) {
	h := newHarness("A")
	plat := h.field.CreatePlatform(400, 2000, 100)
	h.field.Update(0) // Retires it

	if h.ctrl.onContact(plat.Handle()) {
		t.Error("stale handle should not hold")
	}
	if len(h.physics.toggles) != 0 || len(h.events.events) != 0 {
		t.Error("stale handle should have no side effects")
	}
}

func TestContactAfterTerminal(t *testing.T) {
	h := newHarness("")
	plat := h.field.CreatePlatform(400, 200, 100)
	h.ctrl.Terminate()

	if h.ctrl.onContact(plat.Handle()) {
		t.Error("no platform should hold after the run ended")
	}
}

func TestScoreIsMonotonic(t *testing.T) {
	h := newHarness("")

	h.player.Pos.Y = 510 - 255
	h.tick(1, step)
	if h.ctrl.Score() != 25 {
		t.Fatalf("Score() = %d, expected 25", h.ctrl.Score())
	}

	h.player.Pos.Y = 510
	h.tick(1, step)
	if h.ctrl.Score() != 25 {
		t.Errorf("Score() = %d after falling, expected 25", h.ctrl.Score())
	}
}

func TestScoreCountsOnlyVerticalClimb(t *testing.T) {
	h := newHarness("")

	// Zig-zag across the world while climbing 1000 units
	xs := []float64{100, 700, 250, 650, 400}
	for i := 1; i <= 10; i++ {
		in := player.Intent{Left: i%2 == 0, Right: i%2 == 1}
		h.player.Pos.X = xs[i%len(xs)]
		h.player.Pos.Y = 510 - float64(i)*100
		h.ctrl.Tick(in, step)

		// A sideways move at the same height scores nothing
		h.player.Pos.X = xs[(i+2)%len(xs)]
		h.ctrl.Tick(player.Intent{Left: i%2 == 1, Right: i%2 == 0}, step)
	}

	if h.ctrl.Score() != 100 {
		t.Errorf("Score() = %d, expected 100 for 1000 units climbed at scale 10", h.ctrl.Score())
	}
}

func TestFallBelowCameraTerminatesOnce(t *testing.T) {
	h := newHarness("A")
	h.ctrl.HandleKey("z") // One incorrect keystroke

	h.player.Pos.Y = 750 // Exactly on the line: still alive
	h.tick(1, step)
	if h.ctrl.Terminal() {
		t.Fatal("player on the fatal line should not end the run")
	}

	h.player.Pos.Y = 751
	h.tick(1, step)

	if !h.ctrl.Terminal() {
		t.Fatal("Terminal() should be true below the fatal line")
	}
	if !h.player.Frozen() {
		t.Error("player should be frozen")
	}
	e, ok := h.events.last(EventGameOver)
	if !ok {
		t.Fatal("no game over event")
	}
	if e.Incorrect != 1 || e.Correct != 0 || e.Accuracy != 0 {
		t.Errorf("game over stats = %+v", e)
	}

	now := h.ctrl.Now()
	h.ctrl.Terminate()
	h.tick(5, step)

	if n := h.events.count(EventGameOver); n != 1 {
		t.Errorf("game over events = %d, expected 1", n)
	}
	if h.ctrl.Now() != now {
		t.Error("Tick() should be a no-op after the run ended")
	}
	if got := h.ctrl.HandleKey("a"); got != KeyIgnored {
		t.Errorf("HandleKey() after the end = %v, expected KeyIgnored", got)
	}
}

func TestMilestonesExpandPool(t *testing.T) {
	h := newHarness("A")

	h.player.Pos.Y = 510 - 490 // 49 points
	h.tick(1, step)
	if h.gate.Pool() != "A" {
		t.Fatalf("Pool() = %q before the first milestone", h.gate.Pool())
	}

	h.player.Pos.Y = 510 - 500 // 50 points
	h.tick(1, step)
	if h.gate.Pool() != "AB" {
		t.Fatalf("Pool() = %q, expected AB at 50 points", h.gate.Pool())
	}
	if e, ok := h.events.last(EventPoolExpanded); !ok || e.Pool != "AB" || e.Score != 50 {
		t.Errorf("pool expanded event = %+v, %v", e, ok)
	}

	h.player.Pos.Y = 510 - 2000 // 200 points: three milestones at once
	h.tick(1, step)
	if h.gate.Pool() != "ABCDE" {
		t.Errorf("Pool() = %q, expected ABCDE at 200 points", h.gate.Pool())
	}
}

func TestMilestonesWithoutGate(t *testing.T) {
	h := newHarness("")

	h.player.Pos.Y = 510 - 600
	h.tick(1, step)

	if h.events.count(EventPoolExpanded) != 0 {
		t.Error("an ungated run has no pool to expand")
	}
}

func TestHandleKey(t *testing.T) {
	h := newHarness("A")
	plat := h.field.CreatePlatform(400, 200, 100)

	tests := []struct {
		key      string
		expected KeyOutcome
	}{
		{"a", KeyCorrect},
		{"A", KeyIncorrect}, // Already satisfied
		{"Shift", KeyIgnored},
		{"", KeyIgnored},
		{"1", KeyIgnored},
		{";", KeyIgnored},
		{"é", KeyIgnored},
	}

	for _, tt := range tests {
		if got := h.ctrl.HandleKey(tt.key); got != tt.expected {
			t.Errorf("HandleKey(%q) = %v, expected %v", tt.key, got, tt.expected)
		}
	}

	if !plat.Active() {
		t.Error("typing the letter should activate the platform")
	}
	e, ok := h.events.last(EventActivation)
	if !ok || len(e.Platforms) != 1 || e.Platforms[0] != plat.Handle() {
		t.Errorf("activation event = %+v, %v", e, ok)
	}

	st := h.ctrl.State()
	if st.Correct != 1 || st.Incorrect != 1 || st.Accuracy != 50 {
		t.Errorf("State() = %+v, expected 1 correct, 1 incorrect, 50%%", st)
	}
}

func TestUngatedIgnoresKeys(t *testing.T) {
	h := newHarness("")

	if got := h.ctrl.HandleKey("a"); got != KeyIgnored {
		t.Errorf("HandleKey() = %v, expected KeyIgnored", got)
	}
	if h.ctrl.Gated() {
		t.Error("Gated() should be false")
	}
}

func TestJumpFromGround(t *testing.T) {
	h := newHarness("")
	h.physics.grounded = true

	h.ctrl.Tick(player.Intent{Jump: true}, step)

	if h.events.count(EventJump) != 1 {
		t.Error("jump event expected")
	}
	if h.player.Vel.Y != -360 {
		t.Errorf("Vel.Y = %v, expected -360", h.player.Vel.Y)
	}
}

func TestMultiSinkAndSinkFunc(t *testing.T) {
	var got []EventKind
	rec := &recorder{}
	sink := MultiSink{rec, nil, SinkFunc(func(e Event) { got = append(got, e.Kind) })}

	sink.Notify(Event{Kind: EventJump})

	if len(rec.events) != 1 || len(got) != 1 || got[0] != EventJump {
		t.Errorf("MultiSink did not fan out: %v, %v", rec.events, got)
	}
	if EventGameOver.String() != "game_over" {
		t.Errorf("EventGameOver.String() = %q", EventGameOver.String())
	}
}
