package core

// RuntimeConfig is handed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the externally visible status of a run.
type GameState struct {
	Score     int
	GameOver  bool
	Paused    bool
	Correct   int     // Correct keystrokes
	Incorrect int     // Incorrect keystrokes
	Accuracy  float64 // Percentage in [0, 100]
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
