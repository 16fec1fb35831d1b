// Package pattern provides chessboard calibration pattern detection.
package pattern

import (
	"fmt"

	"camlab/pkg/geometry"
)

// GridSize describes a chessboard calibration pattern by its inner corner
// count. A board with 10x8 squares has 9x7 inner corners.
type GridSize struct {
	Cols int // inner corners per row
	Rows int // inner corners per column
}

// DefaultGrid is the pattern used by the lab handout.
var DefaultGrid = GridSize{Cols: 9, Rows: 7}

// Count returns the total number of inner corners.
func (g GridSize) Count() int {
	return g.Cols * g.Rows
}

// Valid reports whether the grid describes a usable pattern.
func (g GridSize) Valid() bool {
	return g.Cols >= 2 && g.Rows >= 2
}

func (g GridSize) String() string {
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}

// ParseGrid parses a "COLSxROWS" string such as "9x7".
func ParseGrid(s string) (GridSize, error) {
	var g GridSize
	if _, err := fmt.Sscanf(s, "%dx%d", &g.Cols, &g.Rows); err != nil {
		return GridSize{}, fmt.Errorf("invalid grid %q (want COLSxROWS): %w", s, err)
	}
	if !g.Valid() {
		return GridSize{}, fmt.Errorf("invalid grid %q: both dimensions must be >= 2", s)
	}
	return g, nil
}

// ObjectPoints returns the 3D board-frame coordinates of every inner
// corner, column-fastest to match detection order. The board defines the
// z=0 plane; squareSize sets the physical units of the result.
func (g GridSize) ObjectPoints(squareSize float64) []geometry.Point3D {
	pts := make([]geometry.Point3D, 0, g.Count())
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			pts = append(pts, geometry.Point3D{
				X: float64(x) * squareSize,
				Y: float64(y) * squareSize,
			})
		}
	}
	return pts
}

// Detection is the result of looking for the pattern in one frame. Found
// distinguishes a miss from a hit so callers must branch; Corners is only
// meaningful when Found is true.
type Detection struct {
	Found   bool
	Corners []geometry.Point2D
}
