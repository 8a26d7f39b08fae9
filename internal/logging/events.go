package logging

import (
	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/game"
)

// EventLogger returns a listener that logs game events. State changes and
// level starts are logged at info, hits at debug; per-step noise is skipped.
func EventLogger(l *zap.Logger) game.Listener {
	return game.ListenerFunc(func(e game.Event) {
		switch e.Type {
		case game.EventStateChanged:
			l.Info("state changed",
				zap.Stringer("from", e.From),
				zap.Stringer("to", e.To),
				zap.Int("score", e.Score),
				zap.Int("lives", e.Lives),
				zap.Int("level", e.Level),
			)
		case game.EventLevelStarted:
			l.Info("level started", zap.Int("level", e.Level), zap.Int("score", e.Score))
		case game.EventPlayerHit:
			l.Debug("player hit", zap.Int("lives", e.Lives))
		case game.EventEnemyHit:
			l.Debug("enemy hit", zap.Int("score", e.Score))
		}
	})
}
