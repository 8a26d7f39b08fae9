package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/invaders/internal/game"
)

// drain streams s to the end, failing if it runs longer than limit samples.
func drain(t *testing.T, s beep.Streamer, limit int) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if v < -1 || v > 1 {
					t.Fatalf("sample %f out of range", v)
				}
				peak = max(peak, v, -v)
			}
		}
		total += n
		if !ok {
			return total, peak
		}
		if total > limit {
			t.Fatalf("stream still running after %d samples", total)
		}
	}
}

func TestSoundsAreFiniteAndAudible(t *testing.T) {
	rate := beep.SampleRate(8000)
	sounds := []SoundType{
		SoundShoot, SoundEnemyShoot, SoundEnemyExplode, SoundPlayerExplode,
		SoundMarch, SoundLevelUp, SoundGameOver,
	}
	for _, sound := range sounds {
		t.Run(sound.String(), func(t *testing.T) {
			s := NewSound(sound, 0, 1, rate)
			if s == nil {
				t.Fatal("nil streamer")
			}
			total, peak := drain(t, s, rate.N(2*time.Second))
			if total == 0 || peak == 0 {
				t.Errorf("silent sound: %d samples, peak %f", total, peak)
			}
		})
	}
	if NewSound(SoundNone, 0, 1, rate) != nil {
		t.Error("SoundNone should have no streamer")
	}
}

func TestSweepGlides(t *testing.T) {
	rate := beep.SampleRate(1000)
	total, _ := drain(t, NewSweep(100, 10, 100*time.Millisecond, WaveSaw, rate), 1000)
	if total != 100 {
		t.Errorf("streamed %d samples, want 100", total)
	}
}

func TestSoundFor(t *testing.T) {
	tests := []struct {
		event game.Event
		want  SoundType
	}{
		{game.Event{Type: game.EventPlayerFired}, SoundShoot},
		{game.Event{Type: game.EventEnemyFired}, SoundEnemyShoot},
		{game.Event{Type: game.EventEnemyHit}, SoundEnemyExplode},
		{game.Event{Type: game.EventPlayerHit}, SoundPlayerExplode},
		{game.Event{Type: game.EventFormationStepped}, SoundMarch},
		{game.Event{Type: game.EventLevelStarted, Level: 1}, SoundNone},
		{game.Event{Type: game.EventLevelStarted, Level: 2}, SoundLevelUp},
		{game.Event{Type: game.EventStateChanged, To: game.StateGameOver}, SoundGameOver},
		{game.Event{Type: game.EventStateChanged, To: game.StateOK}, SoundNone},
		{game.Event{Type: game.EventScoreChanged}, SoundNone},
	}
	for _, tt := range tests {
		if got := SoundFor(tt.event); got != tt.want {
			t.Errorf("SoundFor(%v) = %v, want %v", tt.event.Type, got, tt.want)
		}
	}
}

func TestSoundManagerWithoutSpeaker(t *testing.T) {
	sm := NewSoundManager(0.5)

	sm.OnEvent(game.Event{Type: game.EventPlayerFired})
	sm.OnEvent(game.Event{Type: game.EventFormationStepped})
	sm.OnEvent(game.Event{Type: game.EventFormationStepped})
	sm.OnEvent(game.Event{Type: game.EventScoreChanged})

	if sm.Played(SoundShoot) != 1 || sm.Played(SoundMarch) != 2 {
		t.Errorf("played shoot=%d march=%d", sm.Played(SoundShoot), sm.Played(SoundMarch))
	}
	if sm.march != 2 {
		t.Errorf("march step = %d, want 2", sm.march)
	}

	sm.OnEvent(game.Event{Type: game.EventLevelStarted, Level: 1})
	if sm.march != 0 {
		t.Error("a new game should restart the march")
	}
	sm.Cleanup()
}

func TestSoundManagerListensToGame(t *testing.T) {
	sm := NewSoundManager(1)
	g := game.New(nil, game.WithListener(sm))
	g.Reset()
	if sm.Played(SoundLevelUp) != 0 {
		t.Error("level 1 should not play the level-up jingle")
	}
}
