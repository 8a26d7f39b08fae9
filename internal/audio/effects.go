package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave whose frequency slides linearly from
// freq to endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator that glides from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. Zero or negative volume is silent, since
// effects.Volume works in log space.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is an oscillator shaped by a short attack and the given release.
func tone(freq, endFreq float64, d, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(freq, endFreq, d, wave, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, release, rate)
}

// marchNotes is the four-step bass line of the formation.
var marchNotes = [...]float64{98.0, 87.31, 77.78, 73.42}

// NewSound builds a fresh streamer for the sound. step selects the march
// note and is ignored by every other sound.
func NewSound(sound SoundType, step int, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch sound {
	case SoundShoot:
		s = tone(1400, 300, 120*time.Millisecond, 60*time.Millisecond, WaveSquare, rate)
	case SoundEnemyShoot:
		s = newVolume(tone(500, 180, 150*time.Millisecond, 80*time.Millisecond, WaveSaw, rate), 0.5)
	case SoundEnemyExplode:
		s = beep.Mix(
			tone(0, 0, 200*time.Millisecond, 150*time.Millisecond, WaveNoise, rate),
			newVolume(tone(220, 60, 200*time.Millisecond, 150*time.Millisecond, WaveSquare, rate), 0.3),
		)
	case SoundPlayerExplode:
		s = beep.Mix(
			tone(0, 0, 600*time.Millisecond, 500*time.Millisecond, WaveNoise, rate),
			newVolume(tone(120, 40, 600*time.Millisecond, 500*time.Millisecond, WaveSine, rate), 0.6),
		)
	case SoundMarch:
		note := marchNotes[((step%len(marchNotes))+len(marchNotes))%len(marchNotes)]
		s = tone(note, note, 90*time.Millisecond, 40*time.Millisecond, WaveSquare, rate)
	case SoundLevelUp:
		s = beep.Seq(
			tone(659.25, 659.25, 100*time.Millisecond, 40*time.Millisecond, WaveSquare, rate),
			tone(880.0, 880.0, 100*time.Millisecond, 40*time.Millisecond, WaveSquare, rate),
			tone(1318.51, 1318.51, 200*time.Millisecond, 120*time.Millisecond, WaveSquare, rate),
		)
	case SoundGameOver:
		s = beep.Seq(
			tone(392.0, 392.0, 200*time.Millisecond, 60*time.Millisecond, WaveSaw, rate),
			tone(311.13, 311.13, 200*time.Millisecond, 60*time.Millisecond, WaveSaw, rate),
			tone(261.63, 130.81, 500*time.Millisecond, 300*time.Millisecond, WaveSaw, rate),
		)
	default:
		return nil
	}
	return newVolume(s, volume*0.25)
}
