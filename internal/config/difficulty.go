package config

import "time"

// ApplyPreset adjusts the pacing of a run for a difficulty preset. Medium
// leaves the loaded values untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.MilestoneInterval = 75
		cfg.Session.Cooldown = 700 * time.Millisecond
		cfg.Field.MinStride = 50
		cfg.Field.MaxStride = 80
		cfg.Field.MinWidth = 150
		cfg.Field.MaxWidth = 220
	case DifficultyHard:
		cfg.Session.MilestoneInterval = 30
		cfg.Session.Cooldown = 350 * time.Millisecond
		cfg.Field.MinStride = 70
		cfg.Field.MaxStride = 100
		cfg.Field.MinWidth = 100
		cfg.Field.MaxWidth = 160
	}
}
