// Package audio turns simulation events into short synthesized effects.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/jerecoder/cave-snake/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// tone is one note of an effect.
type tone struct {
	freq  float64
	dur   time.Duration
	wave  func(beep.SampleRate, float64) (beep.Streamer, error)
	decay float64 // exponential decay rate per second, 0 for flat
}

// decayEnvelope fades a stream out exponentially and ends it after n
// samples.
type decayEnvelope struct {
	s     beep.Streamer
	rate  float64
	pos   int
	total int
}

func (e *decayEnvelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if rest := e.total - e.pos; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(e.pos) / float64(sampleRate)
		vol := math.Exp(-t * e.rate)
		// 5ms linear release so notes do not click
		if left := e.total - e.pos; left < sampleRate.N(5*time.Millisecond) {
			vol *= float64(left) / float64(sampleRate.N(5*time.Millisecond))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *decayEnvelope) Err() error { return e.s.Err() }

// noise is white noise from a fixed LCG so effects are reproducible.
type noise struct {
	state uint32
}

func (g *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		g.state = g.state*1664525 + 1013904223
		v := float64(g.state>>8)/float64(1<<24)*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }

func noiseWave(beep.SampleRate, float64) (beep.Streamer, error) {
	return &noise{state: 0x2545f491}, nil
}

// withVolume scales a stream by a linear gain.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// notes renders a sequence of tones back to back.
func notes(gain float64, seq ...tone) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(seq))
	for _, t := range seq {
		osc, err := t.wave(sampleRate, t.freq)
		if err != nil {
			continue
		}
		parts = append(parts, &decayEnvelope{s: osc, rate: t.decay, total: sampleRate.N(t.dur)})
	}
	if len(parts) == 0 {
		return nil
	}
	return withVolume(beep.Seq(parts...), gain)
}

// Effect builds the sound for an event, or nil when the event is silent.
// Streams are finite and never loop.
func Effect(e core.Event, volume float64) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	switch e.Kind {
	case core.EventChunkExpanded:
		return notes(volume*0.5,
			tone{523.25, ms(70), generators.SquareTone, 4},
			tone{659.25, ms(70), generators.SquareTone, 4},
			tone{783.99, ms(120), generators.SquareTone, 6},
		)
	case core.EventRespawned:
		return notes(volume*0.5,
			tone{392, ms(90), generators.TriangleTone, 3},
			tone{261.63, ms(160), generators.TriangleTone, 6},
		)
	case core.EventDied:
		return notes(volume*0.6,
			tone{220, ms(150), generators.SawtoothTone, 2},
			tone{174.61, ms(150), generators.SawtoothTone, 2},
			tone{130.81, ms(350), generators.SawtoothTone, 4},
		)
	case core.EventShotFired:
		// pistol, shotgun, rail
		switch e.Value {
		case 2:
			return notes(volume*0.4, tone{0, ms(120), noiseWave, 25})
		case 3:
			return notes(volume*0.4, tone{1318.5, ms(180), generators.SawtoothTone, 12})
		default:
			return notes(volume*0.35, tone{880, ms(50), generators.SquareTone, 30})
		}
	case core.EventEnemyKilled:
		return notes(volume*0.4,
			tone{0, ms(60), noiseWave, 20},
			tone{110, ms(120), generators.SineTone, 10},
		)
	case core.EventPlayerHit:
		return notes(volume*0.5, tone{100, ms(150), generators.SawtoothTone, 8})
	case core.EventBossPhaseChanged:
		return notes(volume*0.6,
			tone{146.83, ms(200), generators.SquareTone, 1},
			tone{138.59, ms(300), generators.SquareTone, 2},
		)
	case core.EventBossDefeated:
		return notes(volume*0.6,
			tone{0, ms(200), noiseWave, 6},
			tone{523.25, ms(100), generators.TriangleTone, 2},
			tone{783.99, ms(100), generators.TriangleTone, 2},
			tone{1046.5, ms(300), generators.TriangleTone, 3},
		)
	case core.EventPickupTaken:
		return notes(volume*0.4,
			tone{880, ms(60), generators.SineTone, 4},
			tone{1760, ms(120), generators.SineTone, 8},
		)
	case core.EventLevelComplete:
		return notes(volume*0.5,
			tone{523.25, ms(90), generators.TriangleTone, 2},
			tone{659.25, ms(90), generators.TriangleTone, 2},
			tone{783.99, ms(90), generators.TriangleTone, 2},
			tone{1046.5, ms(250), generators.TriangleTone, 3},
		)
	}
	return nil
}
