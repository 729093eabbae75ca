// Package audio plays short synthesized tones for gameplay events. It is a
// session.Sink: events are queued on a mixer and never block the game loop.
// When no audio device is available the player stays silent.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/session"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq float64
	dur  time.Duration
}

var tones = map[session.EventKind]tone{
	session.EventJump:         {523.25, 100 * time.Millisecond}, // C5
	session.EventLanding:      {392.00, 80 * time.Millisecond},  // G4
	session.EventCorrectKey:   {659.25, 90 * time.Millisecond},  // E5
	session.EventIncorrectKey: {349.23, 150 * time.Millisecond}, // F4
	session.EventGameOver:     {220.00, 600 * time.Millisecond}, // A3
	session.EventActivation:   {783.99, 120 * time.Millisecond}, // G5
}

// Frequency returns the tone played for an event kind.
func Frequency(kind session.EventKind) (float64, bool) {
	t, ok := tones[kind]
	return t.freq, ok
}

// Cue builds the streamer for an event kind, or nil if the kind is silent.
// volume is in halvings of amplitude; 0 is full scale.
func Cue(kind session.EventKind, volume float64) beep.Streamer {
	t, ok := tones[kind]
	if !ok {
		return nil
	}
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return nil
	}
	n := sampleRate.N(t.dur)
	return &effects.Volume{
		Streamer: &fadeOut{Streamer: beep.Take(n, sine), total: n},
		Base:     2,
		Volume:   volume,
	}
}

// fadeOut ramps amplitude linearly to zero over total samples so tones end
// without a click.
type fadeOut struct {
	beep.Streamer
	total int
	pos   int
}

func (f *fadeOut) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1 - float64(f.pos)/float64(f.total)
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

// Player mixes event tones onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	enabled     bool
	initialized bool
	volume      float64
	logger      *log.Logger
}

// New creates a player. Nothing is played until Init succeeds.
func New(cfg config.SoundConfig, logger *log.Logger) *Player {
	return &Player{
		mixer:   &beep.Mixer{},
		enabled: cfg.Enabled,
		volume:  cfg.Volume,
		logger:  logger,
	}
}

// Init opens the audio device. On failure the player stays silent and the
// error is returned for logging.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		if p.logger != nil {
			p.logger.Warn("audio unavailable, continuing without sound", "error", err)
		}
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Notify queues the tone for e.
func (p *Player) Notify(e session.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || !p.initialized {
		return
	}
	s := Cue(e.Kind, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// SetEnabled mutes or unmutes the player.
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Enabled reports whether tones are played.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
