package audio

import (
	"math"
	"testing"
	"time"

	"github.com/jerecoder/cave-snake/internal/core"
)

// drain streams s to the end and returns every sample, giving up after
// five seconds of audio.
func drain(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	limit := sampleRate.N(5 * time.Second)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("expected the effect to end")
	return nil
}

func TestEffectSilentEvents(t *testing.T) {
	for _, kind := range []core.EventKind{core.EventNone, core.EventPathToggled} {
		if s := Effect(core.Event{Kind: kind}, 1); s != nil {
			t.Errorf("%s: expected no sound", kind)
		}
	}
}

func TestEffectsAreFiniteAndBounded(t *testing.T) {
	kinds := []core.EventKind{
		core.EventChunkExpanded,
		core.EventRespawned,
		core.EventDied,
		core.EventShotFired,
		core.EventEnemyKilled,
		core.EventPlayerHit,
		core.EventBossPhaseChanged,
		core.EventBossDefeated,
		core.EventPickupTaken,
		core.EventLevelComplete,
	}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := Effect(core.Event{Kind: kind, Value: 1}, 1)
			if s == nil {
				t.Fatal("expected a sound")
			}
			samples := drain(t, s)
			if len(samples) == 0 {
				t.Fatal("expected some samples")
			}
			for i, v := range samples {
				if math.Abs(v[0]) > 1 || math.Abs(v[1]) > 1 || math.IsNaN(v[0]) {
					t.Fatalf("sample %d = %v, expected within [-1, 1]", i, v)
				}
			}
		})
	}
}

func TestShotEffectPerWeapon(t *testing.T) {
	tests := []struct {
		weapon int
		dur    time.Duration
	}{
		{1, 50 * time.Millisecond},
		{2, 120 * time.Millisecond},
		{3, 180 * time.Millisecond},
	}
	for _, tt := range tests {
		got := len(drain(t, Effect(core.Event{Kind: core.EventShotFired, Value: tt.weapon}, 1)))
		want := sampleRate.N(tt.dur)
		if got < want-1 || got > want+1 {
			t.Errorf("weapon %d: %d samples, expected about %d", tt.weapon, got, want)
		}
	}
}

func TestEffectDeterministic(t *testing.T) {
	e := core.Event{Kind: core.EventBossDefeated}
	a := drain(t, Effect(e, 0.8))
	b := drain(t, Effect(e, 0.8))
	if len(a) != len(b) {
		t.Fatalf("lengths %d and %d, expected equal", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestMutedEffectIsSilent(t *testing.T) {
	for _, v := range drain(t, Effect(core.Event{Kind: core.EventPlayerHit}, 0)) {
		if v[0] != 0 || v[1] != 0 {
			t.Fatal("expected silence at zero volume")
		}
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	var nilManager *SoundManager
	nilManager.Play([]core.Event{{Kind: core.EventDied}})
	nilManager.Cleanup()

	sm := NewSoundManager(2)
	if sm.volume != 1 {
		t.Errorf("volume = %v, expected clamp to 1", sm.volume)
	}
	sm.Play([]core.Event{{Kind: core.EventDied}})
	if sm.mixer.Len() != 0 {
		t.Error("expected no voices before Initialize")
	}
}
