package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
)

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	// On game state or overlay transitions, do a full terminal clear
	// so text from the previous state doesn't persist on screen.
	state := s.game.State()
	if state != s.prevState || s.isInactive != s.wasInactive || s.shuttingDown != s.wasShutdown {
		s.chunkWriter.ClearScreen()
		s.canvas.ForceRedraw()
		s.prevState = state
		s.wasInactive = s.isInactive
		s.wasShutdown = s.shuttingDown
	}

	s.scene.Reset()
	s.game.Draw(s.scene)
	draw.DrawScene(s.canvas, s.scene)

	// Render canvas to terminal
	s.canvas.Render(s.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	s.canvas.RenderBorder(s.chunkWriter)

	s.drawUI()

	return s.chunkWriter.Flush()
}

// drawUI draws the text overlay on top of the canvas.
func (s *Session) drawUI() {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if s.shuttingDown {
		s.drawShutdownScreen(centerX, centerY)
		return
	}
	if s.isInactive {
		s.drawInactivityScreen(centerX, centerY)
		return
	}

	draw.DrawTexts(s.chunkWriter, s.canvas, s.scene)

	controls := "A D / < > move   SPACE / W / ^ shoot   Q quit"
	if len(controls) < termWidth {
		s.chunkWriter.WriteAt(centerX-len(controls)/2+1, termHeight, controls)
	}
}

// drawShutdownScreen draws the server shutdown notice.
func (s *Session) drawShutdownScreen(centerX, centerY int) {
	cw := s.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteColoredAt(centerX-len(title)/2, centerY-2, draw.ColorRed, title)

	msg := fmt.Sprintf("Final score: %d (level %d)", s.game.Player().Score, s.game.Level())
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := fmt.Sprintf("Disconnecting in %d seconds", max(int(s.shutdownTimer+0.999), 0))
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(centerX, centerY int) {
	cw := s.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteColoredAt(centerX-len(title)/2, centerY-2, draw.ColorYellow, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectSeconds-time.Since(s.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}
