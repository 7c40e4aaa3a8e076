// Package audio plays short synthesized cues for game events.
// When audio is disabled or no output device is available it falls back to
// a silent player, so callers never need to check.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/skyward/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound.
type Cue int

const (
	CueFlap Cue = iota
	CueCoin
	CueHit
)

// note is one tone of a cue.
type note struct {
	freq     float64
	duration time.Duration
}

// cues maps each cue to its notes, played in sequence.
var cues = map[Cue][]note{
	// C5
	CueFlap: {{freq: 523.25, duration: 120 * time.Millisecond}},
	// E6 then G6
	CueCoin: {
		{freq: 1318.51, duration: 60 * time.Millisecond},
		{freq: 1567.98, duration: 90 * time.Millisecond},
	},
	// C2
	CueHit: {{freq: 65.41, duration: 250 * time.Millisecond}},
}

// Player plays cues.
type Player interface {
	Play(c Cue)
	Close()
}

// Silent discards every cue.
type Silent struct{}

func (Silent) Play(Cue) {}
func (Silent) Close()   {}

// Speaker plays cues on the default output device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// New opens the speaker when cfg enables audio. Any failure degrades to Silent.
func New(cfg config.AudioConfig, logger *log.Logger) Player {
	if !cfg.Enabled {
		return Silent{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Warn("Audio unavailable, continuing without sound", "error", err)
		return Silent{}
	}
	s := &Speaker{mixer: &beep.Mixer{}, volume: cfg.Volume}
	speaker.Play(s.mixer)
	return s
}

// Play queues c on the mixer. It returns immediately.
func (s *Speaker) Play(c Cue) {
	st, err := cueStreamer(sampleRate, c, s.volume)
	if err != nil || st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}

// cueStreamer builds the finite streamer for c at the given volume (0-1).
func cueStreamer(sr beep.SampleRate, c Cue, volume float64) (beep.Streamer, error) {
	notes, ok := cues[c]
	if !ok {
		return nil, nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sr.N(n.duration), tone))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   gain(volume),
		Silent:   volume <= 0,
	}, nil
}

// gain converts a linear 0-1 volume to the exponent used by effects.Volume.
func gain(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(math.Min(v, 1))
}
