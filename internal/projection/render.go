package projection

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"camlab/pkg/geometry"

	xdraw "golang.org/x/image/draw"
)

// FigureOptions configures figure rendering.
type FigureOptions struct {
	Width       int
	Height      int
	Margin      int // blank border in output pixels
	Supersample int // render at this multiple, then scale down
	Background  color.RGBA
	Foreground  color.RGBA
}

// DefaultFigureOptions returns the settings used by the assignment
// figures.
func DefaultFigureOptions() FigureOptions {
	return FigureOptions{
		Width:       640,
		Height:      640,
		Margin:      40,
		Supersample: 2,
		Background:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Foreground:  color.RGBA{R: 20, G: 20, B: 160, A: 255},
	}
}

// Figure is a software canvas the projected geometry is drawn into.
type Figure struct {
	opts FigureOptions
	img  *image.RGBA
	ss   int

	// fit maps projected coordinates into canvas pixels.
	scale   float64
	offset  geometry.Point2D
	haveFit bool
}

// NewFigure creates an empty figure canvas.
func NewFigure(opts FigureOptions) *Figure {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width*ss, opts.Height*ss))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = opts.Background.R
		img.Pix[i+1] = opts.Background.G
		img.Pix[i+2] = opts.Background.B
		img.Pix[i+3] = opts.Background.A
	}
	return &Figure{opts: opts, img: img, ss: ss}
}

// Fit computes the projected-to-canvas mapping so that pts fill the
// canvas minus the margin, preserving aspect ratio. Y is flipped so +Y
// points up in the figure.
func (f *Figure) Fit(pts []geometry.Point2D) {
	min, max := Bounds(pts)
	spanX := max.X - min.X
	spanY := max.Y - min.Y
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	availW := float64((f.opts.Width - 2*f.opts.Margin) * f.ss)
	availH := float64((f.opts.Height - 2*f.opts.Margin) * f.ss)
	f.scale = availW / spanX
	if s := availH / spanY; s < f.scale {
		f.scale = s
	}

	// Center the drawing.
	cx := (min.X + max.X) / 2
	cy := (min.Y + max.Y) / 2
	f.offset = geometry.Point2D{
		X: float64(f.opts.Width*f.ss)/2 - cx*f.scale,
		Y: float64(f.opts.Height*f.ss)/2 + cy*f.scale,
	}
	f.haveFit = true
}

func (f *Figure) toCanvas(p geometry.Point2D) geometry.PointInt {
	return geometry.Point2D{
		X: p.X*f.scale + f.offset.X,
		Y: -p.Y*f.scale + f.offset.Y,
	}.Round()
}

// DrawPoints plots projected points as small filled squares.
func (f *Figure) DrawPoints(pts []geometry.Point2D) {
	if !f.haveFit {
		f.Fit(pts)
	}
	r := f.ss
	for _, p := range pts {
		c := f.toCanvas(p)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				f.img.SetRGBA(c.X+dx, c.Y+dy, f.opts.Foreground)
			}
		}
	}
}

// DrawEdges draws line segments between projected vertex pairs.
func (f *Figure) DrawEdges(pts []geometry.Point2D, edges [][2]int) {
	if !f.haveFit {
		f.Fit(pts)
	}
	for _, e := range edges {
		if e[0] < 0 || e[1] < 0 || e[0] >= len(pts) || e[1] >= len(pts) {
			continue
		}
		a := f.toCanvas(pts[e[0]])
		b := f.toCanvas(pts[e[1]])
		drawLine(f.img, a, b, f.opts.Foreground, f.ss)
	}
}

// Image returns the finished figure at the requested size, scaled down
// from the supersampled canvas with bilinear filtering.
func (f *Figure) Image() *image.RGBA {
	if f.ss == 1 {
		return f.img
	}
	out := image.NewRGBA(image.Rect(0, 0, f.opts.Width, f.opts.Height))
	xdraw.BiLinear.Scale(out, out.Bounds(), f.img, f.img.Bounds(), xdraw.Src, nil)
	return out
}

// SavePNG writes the figure to a PNG file.
func (f *Figure) SavePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, f.Image()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// drawLine rasterizes a thick line segment with the usual integer DDA.
func drawLine(img *image.RGBA, a, b geometry.PointInt, c color.RGBA, thickness int) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	x, y := a.X, a.Y
	for {
		for oy := -thickness / 2; oy <= thickness/2; oy++ {
			for ox := -thickness / 2; ox <= thickness/2; ox++ {
				img.SetRGBA(x+ox, y+oy, c)
			}
		}
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
