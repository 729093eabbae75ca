package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/typejump.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultGameConfig returns the hardcoded configuration. It matches the
// embedded YAML and is used when that cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Physics: PhysicsConfig{
			Gravity:      600,
			JumpImpulse:  360,
			MoveSpeed:    160,
			PlayerWidth:  32,
			PlayerHeight: 48,
		},
		World: WorldConfig{
			Width:      800,
			ViewHeight: 600,
			CellSize:   16,
		},
		Field: FieldConfig{
			PlatformHeight:   32,
			StartX:           400,
			StartY:           550,
			StartWidth:       200,
			InitialCount:     20,
			InitialStride:    70,
			InitialMinWidth:  140,
			InitialMaxWidth:  200,
			SpawnMinX:        100,
			SpawnMaxX:        700,
			MinStride:        60,
			MaxStride:        90,
			MinWidth:         120,
			MaxWidth:         200,
			GenerationMargin: 300,
			RetireMargin:     800,
		},
		Letters: LettersConfig{
			InitialPool: "ABCD",
		},
		Session: SessionConfig{
			ScoreScale:        10,
			MilestoneInterval: 50,
			Cooldown:          500 * time.Millisecond,
			GameOverBuffer:    150,
		},
		Camera: CameraConfig{
			Anchor:    0.4,
			Smoothing: 200 * time.Millisecond,
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  -1.5,
		},
	}
}
