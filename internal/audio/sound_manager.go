package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/invaders/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager plays sound effects through the system speaker.
// It implements game.Listener; until Initialize succeeds it stays silent.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	march       int // Next march note
	initialized bool
	played      map[SoundType]int
}

// NewSoundManager creates a sound manager with volume in [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		played: make(map[SoundType]int),
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every playing sound.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	sm.initialized = false
}

// Play starts a sound. Overlapping sounds are mixed.
func (sm *SoundManager) Play(sound SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	step := 0
	if sound == SoundMarch {
		step = sm.march
		sm.march = (sm.march + 1) % len(marchNotes)
	}
	sm.played[sound]++

	if !sm.initialized {
		return
	}
	s := NewSound(sound, step, sm.volume, sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times sound was requested.
func (sm *SoundManager) Played(sound SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[sound]
}

// OnEvent plays the sound for e, if any.
func (sm *SoundManager) OnEvent(e game.Event) {
	if e.Type == game.EventLevelStarted && e.Level == 1 {
		sm.mu.Lock()
		sm.march = 0
		sm.mu.Unlock()
	}
	if sound := SoundFor(e); sound != SoundNone {
		sm.Play(sound)
	}
}

var _ game.Listener = (*SoundManager)(nil)
