// Package typejump adapts a Typing Jump run to the terminal platform: it
// assembles the field, typing gate, physics world, camera and session
// controller, feeds them input frames and paints the result as characters.
package typejump

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typejump/internal/camera"
	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/core"
	"github.com/vovakirdan/typejump/internal/field"
	"github.com/vovakirdan/typejump/internal/letters"
	"github.com/vovakirdan/typejump/internal/physics"
	"github.com/vovakirdan/typejump/internal/player"
	"github.com/vovakirdan/typejump/internal/registry"
	"github.com/vovakirdan/typejump/internal/session"
)

// Mode IDs as registered.
const (
	ModeTyping = "typejump"
	ModeArrows = "typejump_arrows"
)

// Visual characters for rendering
const (
	PlatformChar  = '▀'
	PlayerChar    = '█'
	SeparatorChar = '─'
)

const (
	minScreenW = 30
	minScreenH = 12
	hudRows    = 2
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	sink             session.Sink
	logger           *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// SetSink routes gameplay events of every new run to s.
func SetSink(s session.Sink) {
	sink = s
}

// SetLogger sets the logger used for config problems.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game implements registry.Game for both Typing Jump modes.
type Game struct {
	gated  bool
	preset config.DifficultyPreset // Overrides the package preset when set

	cfg     config.GameConfig
	runtime core.RuntimeConfig
	dt      time.Duration

	gate   *letters.Gate
	field  *field.Manager
	world  *physics.World
	player *player.Player
	camera *camera.Camera
	ctrl   *session.Controller

	paused bool
}

// New creates a typing-gated game.
func New() *Game {
	return &Game{gated: true}
}

// NewArrows creates a game where every platform is solid from the start.
func NewArrows() *Game {
	return &Game{}
}

// SetDifficulty sets the preset of this instance for the next Reset.
// Unknown names fall back to the package preset.
func (g *Game) SetDifficulty(name string) {
	if p, ok := config.ParsePreset(name); ok {
		g.preset = p
		return
	}
	g.preset = ""
}

// ID returns the mode ID.
func (g *Game) ID() string {
	if g.gated {
		return ModeTyping
	}
	return ModeArrows
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.gated {
		return "Typing Jump"
	}
	return "Typing Jump (Arrows)"
}

// Description returns a one-line summary of the mode.
func (g *Game) Description() string {
	if g.gated {
		return "Type a platform's letter to make it solid, then jump onto it"
	}
	return "Every platform is solid; climb with the arrow keys"
}

// Reset starts a fresh run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = config.DefaultTickRate
	}
	g.cfg = loadConfig(preset, tickRate)
	g.paused = false

	g.dt = time.Second / time.Duration(tickRate)

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// A nil *letters.Gate must not reach the field as a non-nil interface
	var fieldGate field.Gate
	g.gate = nil
	if g.gated {
		g.gate = letters.NewGate(g.cfg.Letters.InitialPool, rng)
		fieldGate = g.gate
	}

	g.field = field.NewManager(g.cfg.Field, g.cfg.World.Width, field.ReachFrom(g.cfg.Physics, tickRate), rng, fieldGate)
	g.world = physics.NewWorld(g.cfg.World, g.cfg.Physics)
	g.field.SetListener(g.world)
	g.field.CreateInitialPlatforms()

	fc := g.cfg.Field
	g.player = player.New(g.cfg.Physics, fc.StartX, fc.StartY-fc.PlatformHeight/2-g.cfg.Physics.PlayerHeight/2)
	g.world.AttachPlayer(g.player)
	g.camera = camera.New(g.cfg.Camera, g.cfg.World.ViewHeight, 0)

	g.ctrl = session.New(g.cfg.Session, session.Deps{
		Field:   g.field,
		Gate:    g.gate,
		Player:  g.player,
		Physics: g.world,
		Camera:  g.camera,
		Sink:    sink,
	})
}

// loadConfig loads the config file, applies the preset and falls back to
// the defaults when anything is invalid at tickRate.
func loadConfig(preset config.DifficultyPreset, tickRate int) config.GameConfig {
	cfg, err := config.Load(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default config", "error", err)
		}
		cfg = config.DefaultGameConfig()
	}

	config.ApplyPreset(&cfg, preset)
	if err := cfg.ValidateAt(tickRate); err != nil {
		if logger != nil {
			logger.Warn("config is not playable, using defaults", "preset", preset, "tick_rate", tickRate, "error", err)
		}
		cfg = config.DefaultGameConfig()
	}
	return cfg
}

// Step advances the run by one tick: typed keys first, then movement.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.ctrl.Terminal() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, key := range in.Typed {
		g.ctrl.HandleKey(key)
	}

	g.ctrl.Tick(player.Intent{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Jump:  in.Has(core.ActionJump),
	}, g.dt)
	g.camera.Follow(g.player.Pos.Y, g.dt.Seconds())

	return core.StepResult{State: g.State()}
}

// State returns the current counters.
func (g *Game) State() core.GameState {
	s := g.ctrl.State()
	return core.GameState{
		Score:     s.Score,
		GameOver:  s.Terminal,
		Paused:    g.paused,
		Correct:   s.Correct,
		Incorrect: s.Incorrect,
		Accuracy:  s.Accuracy,
	}
}

// Gated reports whether platforms need their letter typed.
func (g *Game) Gated() bool {
	return g.gated
}

// Elapsed returns the simulated run time.
func (g *Game) Elapsed() time.Duration {
	return g.ctrl.Now()
}

// Pool returns the current letter pool, empty in arrows mode.
func (g *Game) Pool() string {
	if g.gate == nil {
		return ""
	}
	return g.gate.Pool()
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH), core.ColorDefault)
		return
	}

	v := g.viewport(dst)
	g.renderPlatforms(dst, v)
	g.renderPlayer(dst, v)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// viewport maps world coordinates to screen cells below the HUD.
type viewport struct {
	scrollY float64
	sx, sy  float64
	top     int
}

func (g *Game) viewport(dst *core.Screen) viewport {
	return viewport{
		scrollY: g.camera.ScrollY(),
		sx:      float64(dst.Width()) / g.cfg.World.Width,
		sy:      float64(dst.Height()-hudRows) / g.cfg.World.ViewHeight,
		top:     hudRows,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor((y-v.scrollY)*v.sy))
}

func (g *Game) renderPlatforms(dst *core.Screen, v viewport) {
	for _, p := range g.field.Live() {
		b := p.Box()
		y := v.row(b.Top())
		if y < v.top || y >= dst.Height() {
			continue
		}
		x0, x1 := v.col(b.Left()), v.col(b.Right())
		if x1 <= x0 {
			x1 = x0 + 1
		}

		color := g.platformColor(p)
		dst.DrawHLine(x0, y, x1-x0, PlatformChar, color)

		if r, ok := p.Letter(); ok {
			dst.SetColored((x0+x1)/2, y, r, core.ColorWhite)
		}
	}
}

// platformColor: solid platforms blue, unlit platforms whose letter is
// awaited orange, everything else gray.
func (g *Game) platformColor(p *field.Platform) core.Color {
	if p.Active() {
		return core.ColorBlue
	}
	if r, ok := p.Letter(); ok && g.gate != nil && g.gate.IsNeeded(r) {
		return core.ColorOrange
	}
	return core.ColorGray
}

func (g *Game) renderPlayer(dst *core.Screen, v viewport) {
	b := g.player.Box()
	x0, x1 := v.col(b.Left()), v.col(b.Right())
	y0, y1 := v.row(b.Top()), v.row(b.Bottom())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		if y < v.top {
			continue
		}
		dst.DrawHLine(x0, y, x1-x0, PlayerChar, core.ColorCyan)
	}
}

// renderHUD draws score, awaited letters and accuracy.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.ctrl.State()
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", s.Score))

	if g.gate != nil {
		needed := g.gate.Needed()
		keys := make([]string, len(needed))
		for i, r := range needed {
			keys[i] = string(r)
		}
		dst.DrawTextCentered(0, "Type: "+strings.Join(keys, " "), core.ColorOrange)

		acc := "--"
		if s.Correct+s.Incorrect > 0 {
			acc = fmt.Sprintf("%.0f%%", s.Accuracy)
		}
		accText := fmt.Sprintf("Acc: %s", acc)
		dst.DrawText(dst.Width()-len(accText)-1, 0, accText)
	} else {
		dst.DrawTextCentered(0, "Arrows mode", core.ColorGray)
	}

	dst.DrawHLine(0, 1, dst.Width(), SeparatorChar, core.ColorGray)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.ctrl.Terminal():
		s := g.ctrl.State()
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", s.Score)
		if g.gated {
			subtitle = fmt.Sprintf("Score: %d  Accuracy: %.0f%%  |  Press R to restart", s.Score, s.Accuracy)
		}
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press TAB to resume")
	}
}

func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := core.Min(core.Max(len(title), len(subtitle))+4, dst.Width())
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorDefault)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// Register both modes with the registry
func init() {
	registry.Register(ModeTyping, func() registry.Game {
		return New()
	})
	registry.Register(ModeArrows, func() registry.Game {
		return NewArrows()
	})
}
