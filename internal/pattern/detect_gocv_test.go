package pattern

import (
	"image"
	"image/color"
	"math"
	"testing"

	"gocv.io/x/gocv"
)

// drawChessboard renders a synthetic chessboard with the given inner
// corner grid onto a white canvas. square is the square edge in pixels.
func drawChessboard(grid GridSize, square, margin int) gocv.Mat {
	squaresX := grid.Cols + 1
	squaresY := grid.Rows + 1
	w := squaresX*square + 2*margin
	h := squaresY*square + 2*margin

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), h, w, gocv.MatTypeCV8UC3)
	black := color.RGBA{}
	for y := 0; y < squaresY; y++ {
		for x := 0; x < squaresX; x++ {
			if (x+y)%2 != 0 {
				continue
			}
			r := image.Rect(margin+x*square, margin+y*square,
				margin+(x+1)*square, margin+(y+1)*square)
			gocv.Rectangle(&img, r, black, -1)
		}
	}
	return img
}

func TestDetectSyntheticChessboard(t *testing.T) {
	grids := []GridSize{
		{Cols: 9, Rows: 7},
		{Cols: 6, Rows: 4},
		{Cols: 3, Rows: 2},
	}

	for _, grid := range grids {
		img := drawChessboard(grid, 40, 60)
		det := Detect(img, grid)
		img.Close()

		if !det.Found {
			t.Errorf("grid %v: pattern not found", grid)
			continue
		}
		if len(det.Corners) != grid.Count() {
			t.Errorf("grid %v: got %d corners, want %d", grid, len(det.Corners), grid.Count())
		}
	}
}

func TestDetectRefinedCornerPositions(t *testing.T) {
	grid := GridSize{Cols: 9, Rows: 7}
	const square, margin = 40, 60

	img := drawChessboard(grid, square, margin)
	defer img.Close()

	det := DetectRefined(img, grid)
	if !det.Found {
		t.Fatal("pattern not found")
	}

	// Every detected corner must land on a grid intersection. Detection
	// order can run either direction, so check the set property: minimum
	// distance to the ideal lattice below a pixel.
	for _, c := range det.Corners {
		best := 1e9
		for y := 1; y <= grid.Rows; y++ {
			for x := 1; x <= grid.Cols; x++ {
				ix := float64(margin + x*square)
				iy := float64(margin + y*square)
				dx, dy := c.X-ix, c.Y-iy
				if d := math.Hypot(dx, dy); d < best {
					best = d
				}
			}
		}
		if best > 1.0 {
			t.Fatalf("corner %+v is %.2fpx off the lattice", c, best)
		}
	}
}

func TestDetectMissOnBlankFrame(t *testing.T) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer img.Close()

	det := Detect(img, DefaultGrid)
	if det.Found {
		t.Fatal("blank frame must not detect a pattern")
	}
}

func TestDetectEmptyMat(t *testing.T) {
	img := gocv.NewMat()
	defer img.Close()

	if det := Detect(img, DefaultGrid); det.Found {
		t.Fatal("empty mat must not detect a pattern")
	}
}
