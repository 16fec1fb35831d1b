package projection

import (
	"image"
	"image/color"
	"math"
)

// Bilinear samples an image at fractional pixel coordinates by weighting
// the four surrounding pixels. Coordinates are clamped to the image, so
// sampling outside returns the nearest border pixel.
func Bilinear(img image.Image, x, y float64) color.RGBA64 {
	b := img.Bounds()
	maxX := float64(b.Max.X - 1)
	maxY := float64(b.Max.Y - 1)

	x = math.Min(math.Max(x, float64(b.Min.X)), maxX)
	y = math.Min(math.Max(y, float64(b.Min.Y)), maxY)

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > b.Max.X-1 {
		x1 = b.Max.X - 1
	}
	if y1 > b.Max.Y-1 {
		y1 = b.Max.Y - 1
	}

	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := toFloats(img.At(x0, y0))
	c10 := toFloats(img.At(x1, y0))
	c01 := toFloats(img.At(x0, y1))
	c11 := toFloats(img.At(x1, y1))

	var out [4]float64
	for i := 0; i < 4; i++ {
		top := c00[i]*(1-fx) + c10[i]*fx
		bot := c01[i]*(1-fx) + c11[i]*fx
		out[i] = top*(1-fy) + bot*fy
	}

	return color.RGBA64{
		R: uint16(math.Round(out[0])),
		G: uint16(math.Round(out[1])),
		B: uint16(math.Round(out[2])),
		A: uint16(math.Round(out[3])),
	}
}

func toFloats(c color.Color) [4]float64 {
	r, g, b, a := c.RGBA()
	return [4]float64{float64(r), float64(g), float64(b), float64(a)}
}

// ResampleBilinear rescales an image to w x h using Bilinear sampling.
// This is the exercise's hand-built counterpart to a library scaler.
func ResampleBilinear(img image.Image, w, h int) *image.RGBA {
	src := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	sx := float64(src.Dx()) / float64(w)
	sy := float64(src.Dy()) / float64(h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Sample at the center of the destination pixel.
			c := Bilinear(img,
				float64(src.Min.X)+(float64(x)+0.5)*sx-0.5,
				float64(src.Min.Y)+(float64(y)+0.5)*sy-0.5)
			dst.Set(x, y, c)
		}
	}
	return dst
}
