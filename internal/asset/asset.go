// Package asset loads sprite sheets: named resources that expose named
// animations, each a sequence of pixel-mask frames.
package asset

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"
)

// Sheet names used by the game.
const (
	SheetPlayer      = "player"
	SheetEnemies     = "enemies"
	SheetProjectiles = "projectiles"
)

// Frame is one image of an animation, stored as a 1-bit mask.
// Each mask cell covers Scale x Scale scene units.
type Frame struct {
	Cols, Rows int
	Scale      float64
	Mask       []bool // Row-major, len = Cols*Rows
}

// Width returns the frame width in scene units.
func (f *Frame) Width() float64 {
	return float64(f.Cols) * f.Scale
}

// Height returns the frame height in scene units.
func (f *Frame) Height() float64 {
	return float64(f.Rows) * f.Scale
}

// At reports whether the mask cell at (col, row) is set.
func (f *Frame) At(col, row int) bool {
	if col < 0 || col >= f.Cols || row < 0 || row >= f.Rows {
		return false
	}
	return f.Mask[row*f.Cols+col]
}

// Image returns the mask at one pixel per cell: set cells in c, the rest
// transparent.
func (f *Frame) Image(c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Cols, f.Rows))
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			if f.At(col, row) {
				img.Set(col, row, c)
			}
		}
	}
	return img
}

// Lines returns the mask as strings of '#' and '.', one per row.
func (f *Frame) Lines() []string {
	lines := make([]string, f.Rows)
	var b strings.Builder
	for row := 0; row < f.Rows; row++ {
		b.Reset()
		for col := 0; col < f.Cols; col++ {
			if f.At(col, row) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		lines[row] = b.String()
	}
	return lines
}

// Animation is a named frame sequence.
// FrameTime is seconds per frame; zero means frames are switched manually.
type Animation struct {
	Sheet     string
	Name      string
	Frames    []*Frame
	FrameTime float64
}

// Duration returns the time a single pass over all frames takes.
func (a *Animation) Duration() float64 {
	return a.FrameTime * float64(len(a.Frames))
}

// Sheet is a named set of animations.
type Sheet struct {
	Name       string
	Animations map[string]*Animation
}

// AnimationNames returns the sheet's animation names in sorted order.
func (s *Sheet) AnimationNames() []string {
	names := make([]string, 0, len(s.Animations))
	for name := range s.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolver resolves a sheet and animation name to a frame sequence.
type Resolver interface {
	Animation(sheet, name string) *Animation
}

type sheetFile struct {
	Name       string                   `json:"name"`
	Scale      float64                  `json:"scale"`
	Animations map[string]animationFile `json:"animations"`
}

type animationFile struct {
	FrameTime float64    `json:"frameTime"`
	Scale     float64    `json:"scale,omitempty"` // Overrides the sheet scale
	Frames    [][]string `json:"frames"`
}

// Parse decodes a JSON sprite sheet. Frames are rows of '#' (set) and any
// other character (clear); all rows of a frame must have the same length.
func Parse(data []byte) (*Sheet, error) {
	var sf sheetFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("decode sheet: %w", err)
	}
	if sf.Name == "" {
		return nil, fmt.Errorf("sheet has no name")
	}

	sheet := &Sheet{
		Name:       sf.Name,
		Animations: make(map[string]*Animation, len(sf.Animations)),
	}
	for name, af := range sf.Animations {
		scale := sf.Scale
		if af.Scale > 0 {
			scale = af.Scale
		}
		if scale <= 0 {
			scale = 1
		}
		if len(af.Frames) == 0 {
			return nil, fmt.Errorf("sheet %s: animation %s has no frames", sf.Name, name)
		}

		anim := &Animation{
			Sheet:     sf.Name,
			Name:      name,
			FrameTime: af.FrameTime,
			Frames:    make([]*Frame, 0, len(af.Frames)),
		}
		for i, rows := range af.Frames {
			frame, err := parseFrame(rows, scale)
			if err != nil {
				return nil, fmt.Errorf("sheet %s: animation %s frame %d: %w", sf.Name, name, i, err)
			}
			anim.Frames = append(anim.Frames, frame)
		}
		sheet.Animations[name] = anim
	}
	return sheet, nil
}

func parseFrame(rows []string, scale float64) (*Frame, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty frame")
	}
	cols := len(rows[0])
	f := &Frame{
		Cols:  cols,
		Rows:  len(rows),
		Scale: scale,
		Mask:  make([]bool, cols*len(rows)),
	}
	for r, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", r, len(line), cols)
		}
		for c := 0; c < cols; c++ {
			f.Mask[r*cols+c] = line[c] == '#'
		}
	}
	return f, nil
}

// placeholderFrame is a solid 8x8 block used when an animation is missing.
func placeholderFrame() *Frame {
	f := &Frame{Cols: 8, Rows: 8, Scale: 3, Mask: make([]bool, 64)}
	for i := range f.Mask {
		f.Mask[i] = true
	}
	return f
}
