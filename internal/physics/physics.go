// Package physics provides axis-aligned box tests and clamping helpers.
package physics

// Rect is an axis-aligned box in scene coordinates.
// Min is the top-left corner, Max the bottom-right corner.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect builds a Rect from a top-left corner and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Contains reports whether inner lies entirely within r. Shared edges count
// as inside; a box that only partially overlaps r is not contained.
func (r Rect) Contains(inner Rect) bool {
	return inner.MinX >= r.MinX && inner.MaxX <= r.MaxX &&
		inner.MinY >= r.MinY && inner.MaxY <= r.MaxY
}

// Overlaps reports whether the two boxes intersect with a non-zero area.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && r.MaxX > o.MinX && r.MinY < o.MaxY && r.MaxY > o.MinY
}

// Union returns the smallest box covering both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Clamp limits v to [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
