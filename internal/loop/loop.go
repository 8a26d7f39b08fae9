// Package loop runs a game session against a terminal: input, update and
// draw once per frame.
package loop

import (
	"bufio"
	"io"
	"math/rand"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the local terminal
	Username     string
	Logger       *zap.Logger     // Defaults to a no-op logger
	Listeners    []game.Listener // Subscribed before the first frame
	Rand         *rand.Rand      // Defaults to a time-seeded source
	Assets       asset.Resolver  // Defaults to the embedded sheets
	Server       *Server         // Set for multi-user front-ends; enables idle kicks and shutdown notices
}

// Run plays one game on the terminal behind r and w until the player quits,
// the input ends or the server shuts down.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run()
}
