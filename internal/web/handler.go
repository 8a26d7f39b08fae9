// Package web serves the game to browsers: each websocket connection plays
// its own game and receives a scene per tick.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scene"
)

//go:embed static
var static embed.FS

// Handler upgrades requests to websockets and runs one game per connection.
type Handler struct {
	lib      *asset.Library
	logger   *zap.Logger
	server   *loop.Server // Optional; delivers shutdown notices
	tick     time.Duration
	upgrader websocket.Upgrader
	nextID   atomic.Int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// WithServer registers every connection with srv so Shutdown reaches it.
func WithServer(srv *loop.Server) Option {
	return func(h *Handler) { h.server = srv }
}

// WithTick overrides the tick interval.
func WithTick(d time.Duration) Option {
	return func(h *Handler) { h.tick = d }
}

// NewHandler creates a websocket handler serving games built from lib.
func NewHandler(lib *asset.Library, opts ...Option) *Handler {
	h := &Handler{
		lib:    lib,
		logger: zap.NewNop(),
		tick:   config.TargetFrameTime,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// The page is served from any host name the operator chooses.
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewMux routes "/" to the embedded page, "/ws" to h and "/healthz".
func NewMux(h *Handler) *http.ServeMux {
	sub, _ := fs.Sub(static, "static")
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(sub)))
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id := h.nextID.Add(1)
	logger := h.logger.With(zap.Int64("conn", id), zap.String("remote", r.RemoteAddr))

	client := NewClientConn(ws)
	go client.writePump()

	ctx, cancel := context.WithCancel(context.Background())
	keys := make(chan input.Event, 64)
	go client.readPump(keys, ctx.Done(), cancel)

	var events <-chan loop.SessionEvent
	if h.server != nil {
		handle := h.server.RegisterClient(r.RemoteAddr)
		defer h.server.UnregisterClient(handle.ID)
		events = handle.EventsCh
	}

	logger.Info("websocket session started")
	g := h.play(ctx, client, keys, events, logger)
	logger.Info("websocket session ended",
		zap.Int("score", g.Player().Score),
		zap.Int("level", g.Level()),
	)
	cancel()
}

// play runs the game loop for one connection until ctx ends or a shutdown
// notice arrives. It closes client before returning.
func (h *Handler) play(ctx context.Context, client *ClientConn, keys <-chan input.Event, events <-chan loop.SessionEvent, logger *zap.Logger) *game.Game {
	defer client.Close()

	g := game.New(h.lib, game.WithListener(logging.EventLogger(logger)))
	sc := scene.New(config.FieldWidth, config.FieldHeight)

	if err := client.EnqueueJSON(NewAssetsMessage(h.lib, config.FieldWidth, config.FieldHeight)); err != nil {
		logger.Error("encoding assets", zap.Error(err))
		return g
	}

	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return g

		case ev := <-keys:
			g.HandleKey(ev)

		case ev := <-events:
			if ev.Type == loop.EventServerShutdown {
				b, err := json.Marshal(StatusMessage{Type: TypeShutdown, Message: "server shutting down"})
				if err == nil && !client.EnqueueFinal(b) {
					logger.Warn("shutdown notice not delivered")
				}
				return g
			}

		case now := <-ticker.C:
			g.Tick(now.Sub(last))
			last = now

			sc.Reset()
			g.Draw(sc)
			b, err := json.Marshal(NewSceneMessage(g, sc))
			if err != nil {
				logger.Error("encoding frame", zap.Error(err))
				return g
			}
			client.Enqueue(b)
		}
	}
}
