package geometry

import (
	"fmt"

	"github.com/howardginsburg/ImageAIProcessor/internal/faults"
)

// Rect is an axis-aligned rectangle in image pixel coordinates.
// Face and celebrity detectors both report rectangles in this shape.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether the rectangle has non-negative dimensions.
func (r Rect) Valid() bool {
	return r.Width >= 0 && r.Height >= 0
}

// Overlaps reports whether a and b intersect. The comparison is strict, so
// rectangles that only touch at an edge or corner still count as overlapping.
// Rectangles with negative width or height are rejected with
// faults.ErrInvalidGeometry rather than silently returning false.
func Overlaps(a, b Rect) (bool, error) {
	if !a.Valid() {
		return false, fmt.Errorf("%w: negative dimensions %dx%d", faults.ErrInvalidGeometry, a.Width, a.Height)
	}
	if !b.Valid() {
		return false, fmt.Errorf("%w: negative dimensions %dx%d", faults.ErrInvalidGeometry, b.Width, b.Height)
	}

	xLeft := max(a.Left, b.Left)
	yTop := max(a.Top, b.Top)
	xRight := min(a.Left+a.Width, b.Left+b.Width)
	yBottom := min(a.Top+a.Height, b.Top+b.Height)

	if xRight < xLeft || yBottom < yTop {
		return false, nil
	}
	return true, nil
}
