// Package layout partitions rectangles measured in grid cells.
package layout

// Rect is a rectangle in grid cells, not pixels.
type Rect struct {
	X, Y, W, H int
}

func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Inset shrinks rect by dx cells on the left and right and dy cells on the
// top and bottom, clamped so W and H never go negative.
func Inset(rect Rect, dx, dy int) Rect {
	dx, dy = max(dx, 0), max(dy, 0)
	out := Rect{X: rect.X + dx, Y: rect.Y + dy, W: rect.W - 2*dx, H: rect.H - 2*dy}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Axis selects the dimension a split is measured along.
type Axis int

const (
	// Vertical stacks the parts top and bottom; the split runs along the height.
	Vertical Axis = iota
	// Horizontal places the parts side by side; the split runs along the width.
	Horizontal
)

// Mode selects how a split value is interpreted.
type Mode int

const (
	// Percent treats the split value as a percentage of the measured dimension.
	Percent Mode = iota
	// Cells treats the split value as an absolute cell count.
	Cells
)

// SplitPoint returns the offset of the split along the measured dimension.
// The result is clamped to [0, size].
func SplitPoint(size, value int, mode Mode) int {
	point := value
	if mode == Percent {
		point = (size * value) / 100
	}
	if point < 0 {
		point = 0
	}
	if point > size {
		point = size
	}
	return point
}

// Split divides rect into a first (top or left) and second (bottom or right) part.
// ok is false when rect has a zero dimension, in which case no split is made.
func Split(rect Rect, value int, mode Mode, axis Axis) (first, second Rect, ok bool) {
	if rect.W == 0 || rect.H == 0 {
		return Rect{}, Rect{}, false
	}
	if axis == Vertical {
		point := SplitPoint(rect.H, value, mode)
		first = Rect{X: rect.X, Y: rect.Y, W: rect.W, H: point}
		second = Rect{X: rect.X, Y: rect.Y + point, W: rect.W, H: rect.H - point}
		return first, second, true
	}
	point := SplitPoint(rect.W, value, mode)
	first = Rect{X: rect.X, Y: rect.Y, W: point, H: rect.H}
	second = Rect{X: rect.X + point, Y: rect.Y, W: rect.W - point, H: rect.H}
	return first, second, true
}
