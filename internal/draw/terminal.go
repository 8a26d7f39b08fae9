package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// ANSI control sequences.
const (
	escClearScreen = "\033[H\033[2J"
	escHideCursor  = "\033[?25l"
	escShowCursor  = "\033[?25h"
	escResetColor  = "\033[0m"
)

// maxChunkSize bounds a single write to the terminal so a frame leaves in
// MTU-sized pieces over SSH.
const maxChunkSize = 1400

// appendCursor appends a cursor position sequence for 1-based col and row.
func appendCursor(b []byte, col, row int) []byte {
	b = append(b, "\033["...)
	b = strconv.AppendInt(b, int64(row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col), 10)
	return append(b, 'H')
}

// appendColor appends the SGR foreground sequence for c. ColorNone selects white.
func appendColor(b []byte, c Color) []byte {
	if c == ColorNone {
		c = ColorWhite
	}
	b = append(b, "\033["...)
	b = strconv.AppendInt(b, int64(c), 10)
	return append(b, 'm')
}

// ChunkWriter buffers one frame of terminal output: canvas cells, borders
// and coloured text. Flush sends it in chunks of at most maxChunkSize bytes.
// Positions passed to WriteAt are canvas-relative; the centering offset is
// added here.
type ChunkWriter struct {
	w      io.Writer
	buf    []byte
	offCol int
	offRow int
	color  Color // Foreground selected by buffered output, ColorNone for default
}

// NewChunkWriter creates a ChunkWriter writing to w with the given
// centering offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		w:      w,
		buf:    make([]byte, 0, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the centering offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// Write appends raw terminal output. The output must leave the foreground
// colour at the default, as Canvas.Render and RenderBorder do.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	cw.buf = append(cw.buf, p...)
	cw.color = ColorNone
	return len(p), nil
}

var _ io.Writer = (*ChunkWriter)(nil)

// SetColor selects the foreground for following WriteAt calls. Nothing is
// emitted when c is already selected.
func (cw *ChunkWriter) SetColor(c Color) {
	if c == cw.color {
		return
	}
	if c == ColorNone {
		cw.ResetColor()
		return
	}
	cw.buf = appendColor(cw.buf, c)
	cw.color = c
}

// ResetColor restores the terminal's default foreground.
func (cw *ChunkWriter) ResetColor() {
	if cw.color == ColorNone {
		return
	}
	cw.buf = append(cw.buf, escResetColor...)
	cw.color = ColorNone
}

// WriteAt writes s at the 1-based canvas position col, row in the
// current colour.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.buf = appendCursor(cw.buf, col+cw.offCol, row+cw.offRow)
	cw.buf = append(cw.buf, s...)
}

// WriteColoredAt writes s at col, row in colour c and resets the colour.
func (cw *ChunkWriter) WriteColoredAt(col, row int, c Color, s string) {
	cw.SetColor(c)
	cw.WriteAt(col, row, s)
	cw.ResetColor()
}

// ClearScreen queues a full terminal clear.
func (cw *ChunkWriter) ClearScreen() {
	cw.ResetColor()
	cw.buf = append(cw.buf, escClearScreen...)
}

// Flush sends the buffered frame and empties the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf
	cw.buf = cw.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, escClearScreen)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, escHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, escShowCursor)
}

// ClampTermSize clamps terminal dimensions to maxWidth x maxHeight and computes
// the centering offset for the render area.
func ClampTermSize(termWidth, termHeight, maxWidth, maxHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, maxWidth)
	renderHeight = min(termHeight, maxHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
