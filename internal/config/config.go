// Package config provides YAML-based game configuration, environment
// overrides and difficulty presets for Typing Jump.
package config

import "time"

// GameConfig contains every tunable of a Typing Jump run.
type GameConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	World   WorldConfig   `yaml:"world"`
	Field   FieldConfig   `yaml:"field"`
	Letters LettersConfig `yaml:"letters"`
	Session SessionConfig `yaml:"session"`
	Camera  CameraConfig  `yaml:"camera"`
	Sound   SoundConfig   `yaml:"sound"`
}

// PhysicsConfig defines player movement in world units per second.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"       env:"TYPEJUMP_GRAVITY"`
	JumpImpulse  float64 `yaml:"jump_impulse"  env:"TYPEJUMP_JUMP_IMPULSE"`
	MoveSpeed    float64 `yaml:"move_speed"    env:"TYPEJUMP_MOVE_SPEED"`
	PlayerWidth  float64 `yaml:"player_width"`
	PlayerHeight float64 `yaml:"player_height"`
}

// DefaultTickRate is the simulation rate assumed when none is given.
const DefaultTickRate = 60

// JumpApex is the height a standing jump reaches when integrated at
// tickRate. It sits a little below the continuous impulse²/(2·gravity).
func (p PhysicsConfig) JumpApex(tickRate int) float64 {
	apex, _ := p.jumpArc(0, tickRate)
	return apex
}

// AirTime returns how long a jump takes to land on a surface rise units
// above the takeoff, or 0 when the jump never gets that high.
func (p PhysicsConfig) AirTime(rise float64, tickRate int) time.Duration {
	_, ticks := p.jumpArc(rise, tickRate)
	if ticks == 0 {
		return 0
	}
	return time.Duration(ticks) * time.Second / time.Duration(tickRate)
}

// HorizontalReach is how far the player can travel sideways during a jump
// onto a surface rise units higher.
func (p PhysicsConfig) HorizontalReach(rise float64, tickRate int) float64 {
	return p.MoveSpeed * p.AirTime(rise, tickRate).Seconds()
}

// jumpArc steps a jump the way the physics world does: velocity first, then
// position. It returns the apex and the tick on which the falling player
// comes back down to rise (0 if it never reaches it).
func (p PhysicsConfig) jumpArc(rise float64, tickRate int) (apex float64, landing int) {
	if p.Gravity <= 0 || p.JumpImpulse <= 0 || tickRate <= 0 {
		return 0, 0
	}
	dt := 1 / float64(tickRate)
	v, y := p.JumpImpulse, 0.0
	for tick := 1; ; tick++ {
		v -= p.Gravity * dt
		y += v * dt
		if y > apex {
			apex = y
		}
		if v < 0 && y <= rise {
			if apex < rise {
				return apex, 0
			}
			return apex, tick
		}
	}
}

// WorldConfig defines the fixed horizontal play area and the visible height.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	ViewHeight float64 `yaml:"view_height"`
	CellSize   int     `yaml:"cell_size"` // Broadphase cell size for collision
}

// FieldConfig defines platform layout and the generation/retirement window.
type FieldConfig struct {
	PlatformHeight float64 `yaml:"platform_height"`

	StartX     float64 `yaml:"start_x"`
	StartY     float64 `yaml:"start_y"`
	StartWidth float64 `yaml:"start_width"`

	InitialCount    int     `yaml:"initial_count"`
	InitialStride   float64 `yaml:"initial_stride"`
	InitialMinWidth float64 `yaml:"initial_min_width"`
	InitialMaxWidth float64 `yaml:"initial_max_width"`

	SpawnMinX float64 `yaml:"spawn_min_x"`
	SpawnMaxX float64 `yaml:"spawn_max_x"`

	MinStride float64 `yaml:"min_stride" env:"TYPEJUMP_MIN_STRIDE"`
	MaxStride float64 `yaml:"max_stride" env:"TYPEJUMP_MAX_STRIDE"`
	MinWidth  float64 `yaml:"min_width"`
	MaxWidth  float64 `yaml:"max_width"`

	GenerationMargin float64 `yaml:"generation_margin"`
	RetireMargin     float64 `yaml:"retire_margin"`
}

// LettersConfig defines the starting alphabet of the typing gate.
type LettersConfig struct {
	InitialPool string `yaml:"initial_pool" env:"TYPEJUMP_INITIAL_POOL"`
}

// SessionConfig defines scoring, cooldown and the fatal fall line.
type SessionConfig struct {
	ScoreScale        float64       `yaml:"score_scale"        env:"TYPEJUMP_SCORE_SCALE"`
	MilestoneInterval int           `yaml:"milestone_interval" env:"TYPEJUMP_MILESTONE_INTERVAL"`
	Cooldown          time.Duration `yaml:"cooldown"           env:"TYPEJUMP_COOLDOWN"`
	GameOverBuffer    float64       `yaml:"game_over_buffer"   env:"TYPEJUMP_GAME_OVER_BUFFER"`
}

// CameraConfig defines how the view follows the player.
type CameraConfig struct {
	// Anchor is the fraction of the view height, from the top, the player is
	// kept at once the camera starts following.
	Anchor    float64       `yaml:"anchor"`
	Smoothing time.Duration `yaml:"smoothing"`
}

// SoundConfig toggles audio cues.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled" env:"TYPEJUMP_SOUND"`
	Volume  float64 `yaml:"volume"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the difficulty presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParsePreset converts a name into a preset, defaulting to medium.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return DifficultyPreset(name), true
	case "", "normal":
		return DifficultyMedium, true
	default:
		return DifficultyMedium, false
	}
}
