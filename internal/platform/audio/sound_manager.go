package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/jerecoder/cave-snake/internal/core"
)

// maxVoices caps concurrent effects; a burst of shotgun kills would
// otherwise pile up in the mixer.
const maxVoices = 8

// SoundManager plays event effects through the system speaker.
// A zero or uninitialized manager is silent, so callers need no nil checks
// beyond the pointer itself.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a manager at the given volume (0..1).
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Initialize opens the speaker. Failure is not fatal: the manager stays
// silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues the effect for each event.
func (sm *SoundManager) Play(events []core.Event) {
	if sm == nil || len(events) == 0 {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	for _, e := range events {
		if sm.mixer.Len() >= maxVoices {
			return
		}
		if s := Effect(e, sm.volume); s != nil {
			sm.mixer.Add(s)
		}
	}
}

// Cleanup silences everything and releases the speaker.
func (sm *SoundManager) Cleanup() {
	if sm == nil {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.mixer.Clear()
	sm.initialized = false
}
