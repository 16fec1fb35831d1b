// Package imgproc wraps the primer image operations: loading, basic
// processing, and shape drawing.
package imgproc

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Load reads an image file into a BGR mat. The caller owns the mat.
func Load(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return gocv.Mat{}, fmt.Errorf("could not read image %s", path)
	}
	return img, nil
}

// Save writes a mat to an image file, format chosen by extension.
func Save(path string, img gocv.Mat) error {
	if ok := gocv.IMWrite(path, img); !ok {
		return fmt.Errorf("could not write %s", path)
	}
	return nil
}

// Info describes an image the way the primer's shape/pixel probe does.
type Info struct {
	Width    int
	Height   int
	Channels int
}

// Describe returns the basic shape of an image.
func Describe(img gocv.Mat) Info {
	return Info{Width: img.Cols(), Height: img.Rows(), Channels: img.Channels()}
}

func (i Info) String() string {
	return fmt.Sprintf("%dx%d, %d channels", i.Width, i.Height, i.Channels)
}

// PixelBGR returns the BGR value at a pixel, or an error when the
// coordinates are outside the image.
func PixelBGR(img gocv.Mat, x, y int) ([3]uint8, error) {
	if x < 0 || y < 0 || x >= img.Cols() || y >= img.Rows() {
		return [3]uint8{}, fmt.Errorf("pixel (%d,%d) outside %dx%d image", x, y, img.Cols(), img.Rows())
	}
	v := img.GetVecbAt(y, x)
	return [3]uint8{v[0], v[1], v[2]}, nil
}

// Grayscale converts a BGR image to single-channel gray.
func Grayscale(img gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	return gray
}

// Threshold binarizes a grayscale image at the given cutoff.
func Threshold(gray gocv.Mat, cutoff float32) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Threshold(gray, &dst, cutoff, 255, gocv.ThresholdBinary)
	return dst
}

// Edges runs Canny edge detection on a grayscale image.
func Edges(gray gocv.Mat, low, high float32) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Canny(gray, &dst, low, high)
	return dst
}

// Blur applies a Gaussian blur with the given kernel size (odd).
func Blur(img gocv.Mat, ksize int) gocv.Mat {
	if ksize%2 == 0 {
		ksize++
	}
	dst := gocv.NewMat()
	gocv.GaussianBlur(img, &dst, image.Pt(ksize, ksize), 0, 0, gocv.BorderDefault)
	return dst
}

// DrawDemo reproduces the primer's shape-drawing exercise on a copy of
// the input: a rectangle, a filled circle, a line and a caption.
func DrawDemo(img gocv.Mat) gocv.Mat {
	out := img.Clone()

	green := color.RGBA{G: 255}
	blue := color.RGBA{B: 255}
	red := color.RGBA{R: 255}
	white := color.RGBA{R: 255, G: 255, B: 255}

	gocv.Rectangle(&out, image.Rect(50, 50, 200, 200), green, 2)
	gocv.Circle(&out, image.Pt(100, 100), 40, blue, -1)
	gocv.Line(&out, image.Pt(0, out.Rows()-1), image.Pt(out.Cols()-1, 0), red, 2)
	gocv.PutText(&out, "camlab primer", image.Pt(10, out.Rows()-15),
		gocv.FontHersheySimplex, 1, white, 2)
	return out
}
