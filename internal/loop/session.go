package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scene"
)

// Session handles rendering and input for a single terminal.
type Session struct {
	game         *game.Game
	server       *Server
	handle       *Handle
	scene        *scene.Scene
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates a frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *zap.Logger
	username     string

	running       bool
	delta         time.Duration
	lastInput     time.Time
	isInactive    bool
	wasInactive   bool
	prevState     game.State
	shuttingDown  bool
	wasShutdown   bool
	shutdownTimer float64 // Seconds left on the shutdown screen
}

// NewSession creates a session and, when opts.Server is set, registers it.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	assets := opts.Assets
	if assets == nil {
		lib, err := asset.LoadDefault(context.Background())
		if err != nil {
			// Missing animations fall back to placeholders.
			logger.Warn("loading sprite sheets", zap.Error(err))
		}
		assets = lib
	}

	gameOpts := []game.Option{}
	if opts.Rand != nil {
		gameOpts = append(gameOpts, game.WithRand(opts.Rand))
	}
	for _, l := range opts.Listeners {
		gameOpts = append(gameOpts, game.WithListener(l))
	}
	g := game.New(assets, gameOpts...)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	s := &Session{
		game:         g,
		server:       opts.Server,
		scene:        scene.New(config.FieldWidth, config.FieldHeight),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		username:     opts.Username,
		running:      true,
		lastInput:    time.Now(),
		prevState:    g.State(),
	}
	if s.server != nil {
		s.handle = s.server.RegisterClient(opts.Username)
	}
	return s
}

// Game returns the session's game.
func (s *Session) Game() *game.Game {
	return s.game
}

// Run starts the session loop. Blocks until the session ends.
func (s *Session) Run() error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	s.logger.Info("session started", zap.String("user", s.username))
	defer func() {
		s.logger.Info("session ended",
			zap.String("user", s.username),
			zap.Int("score", s.game.Player().Score),
			zap.Int("level", s.game.Level()),
		)
	}()

	lastTime := time.Now()

	for s.running {
		frameStart := time.Now()
		s.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		s.processInput(frameStart)
		s.processServerEvents()
		s.updateScreen()
		s.update()

		if err := s.drawFrame(); err != nil {
			s.unregister()
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	s.unregister()
	draw.ClearScreen(s.writer)
	return nil
}

func (s *Session) unregister() {
	if s.server != nil && s.handle != nil {
		s.server.UnregisterClient(s.handle.ID)
		s.handle = nil
	}
}

// processInput feeds key transitions to the game and tracks inactivity.
func (s *Session) processInput(now time.Time) {
	events := s.inputStream.Poll(now)
	if s.inputStream.Closed() {
		s.running = false
	}

	for _, ev := range events {
		if ev.IsQuit() {
			s.running = false
			return
		}
		if ev.Down {
			s.lastInput = now
			s.isInactive = false
		}
		if !s.shuttingDown {
			s.game.HandleKey(ev)
		}
	}

	if s.server == nil {
		return
	}
	idle := now.Sub(s.lastInput).Seconds()
	switch {
	case idle > config.InactivityDisconnectSeconds:
		s.logger.Info("disconnecting idle session", zap.String("user", s.username))
		s.running = false
	case idle > config.InactivityWarnSeconds:
		s.isInactive = true
	}
}

// processServerEvents handles events from the server.
func (s *Session) processServerEvents() {
	if s.handle == nil {
		return
	}
	for {
		select {
		case ev, ok := <-s.handle.EventsCh:
			if !ok {
				s.running = false
				return
			}
			if ev.Type == EventServerShutdown && !s.shuttingDown {
				s.shuttingDown = true
				s.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.writer)
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// update advances the game, or the shutdown countdown once the server is stopping.
func (s *Session) update() {
	if s.shuttingDown {
		s.shutdownTimer -= s.delta.Seconds()
		if s.shutdownTimer <= 0 {
			s.running = false
		}
		return
	}
	if s.isInactive {
		return
	}
	s.game.Tick(s.delta)
}
