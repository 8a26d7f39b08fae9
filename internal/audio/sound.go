// Package audio synthesises the game's sound effects with beep and plays
// them in response to game events.
package audio

import "github.com/tomz197/invaders/internal/game"

// SoundType identifies a sound effect.
type SoundType int

const (
	SoundNone SoundType = iota
	SoundShoot
	SoundEnemyShoot
	SoundEnemyExplode
	SoundPlayerExplode
	SoundMarch
	SoundLevelUp
	SoundGameOver
)

var soundNames = [...]string{
	SoundNone:          "none",
	SoundShoot:         "shoot",
	SoundEnemyShoot:    "enemy_shoot",
	SoundEnemyExplode:  "enemy_explode",
	SoundPlayerExplode: "player_explode",
	SoundMarch:         "march",
	SoundLevelUp:       "level_up",
	SoundGameOver:      "game_over",
}

func (s SoundType) String() string {
	if int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

// SoundFor maps a game event to the sound it triggers, or SoundNone.
func SoundFor(e game.Event) SoundType {
	switch e.Type {
	case game.EventPlayerFired:
		return SoundShoot
	case game.EventEnemyFired:
		return SoundEnemyShoot
	case game.EventEnemyHit:
		return SoundEnemyExplode
	case game.EventPlayerHit:
		return SoundPlayerExplode
	case game.EventFormationStepped:
		return SoundMarch
	case game.EventLevelStarted:
		if e.Level > 1 {
			return SoundLevelUp
		}
	case game.EventStateChanged:
		if e.To == game.StateGameOver {
			return SoundGameOver
		}
	}
	return SoundNone
}
