package tui

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sounds are the cues the view plays.
type Sounds interface {
	Catch()
	Escape()
	GameOver()
}

// Speaker plays short sine tones through the default audio device.
type Speaker struct {
	mu          sync.Mutex
	muted       bool
	initialized bool
}

// NewSpeaker creates a speaker. A muted speaker never touches the audio
// device.
func NewSpeaker(muted bool) *Speaker {
	return &Speaker{muted: muted}
}

// Init opens the audio device. Without one the game still runs, silently.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.muted || s.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err != nil {
		return err
	}

	s.initialized = true

	return nil
}

// Close releases the audio device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Catch plays a short high tone.
func (s *Speaker) Catch() {
	s.tone(880, 60*time.Millisecond)
}

// Escape plays a low tone.
func (s *Speaker) Escape() {
	s.tone(220, 150*time.Millisecond)
}

// GameOver plays a long middle tone.
func (s *Speaker) GameOver() {
	s.tone(330, 400*time.Millisecond)
}

func (s *Speaker) tone(freq int, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		log.Printf("tone %d Hz: %v", freq, err)
		return
	}

	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

var _ Sounds = (*Speaker)(nil)
