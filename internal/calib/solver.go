package calib

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sort"

	"camlab/internal/pattern"
	"camlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// ErrInsufficientData is returned when too few frames contain a detected
// pattern for the solve to be well-posed.
var ErrInsufficientData = errors.New("not enough frames with a detected pattern")

const (
	// MinFrames is the hard floor below which the initial DLT estimate is
	// rank-deficient and the solve is refused.
	MinFrames = 3

	// RecommendedFrames is the conventional minimum for a stable result.
	// Not enforced; quality control is the operator's job.
	RecommendedFrames = 10
)

// Options configures the calibration solve.
type Options struct {
	Grid       pattern.GridSize
	SquareSize float64 // physical square edge, in the caller's unit (the lab uses mm)
}

// DefaultOptions returns the lab handout configuration: a 9x7 inner
// corner board with 16.5 mm squares.
func DefaultOptions() Options {
	return Options{
		Grid:       pattern.DefaultGrid,
		SquareSize: 16.5,
	}
}

// FrameReport records the detection outcome for one input file.
type FrameReport struct {
	Path  string
	Found bool
	Err   error // non-nil when the file could not be read at all
}

// Dataset holds the 2D corner observations accumulated from a set of
// calibration frames, ready for the solve.
type Dataset struct {
	Reports   []FrameReport
	Views     [][]geometry.Point2D // one corner set per accepted frame
	ImageSize image.Point
}

// Accepted returns the number of frames with a detected pattern.
func (d *Dataset) Accepted() int {
	return len(d.Views)
}

// LoadDir scans a directory for captured frames (jpg/jpeg/png) and runs
// refined pattern detection on each. Files where the pattern is not found
// are reported but skipped, matching the capture-time contract that only
// detections count.
func LoadDir(dir string, grid pattern.GridSize) (*Dataset, error) {
	var files []string
	for _, pat := range []string{"*.jpg", "*.jpeg", "*.png"} {
		matches, err := filepath.Glob(filepath.Join(dir, pat))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}

	ds := &Dataset{}
	for _, path := range files {
		img := gocv.IMRead(path, gocv.IMReadColor)
		if img.Empty() {
			ds.Reports = append(ds.Reports, FrameReport{Path: path, Err: fmt.Errorf("could not read image")})
			continue
		}

		det := pattern.DetectRefined(img, grid)
		if det.Found {
			ds.Views = append(ds.Views, det.Corners)
			ds.ImageSize = image.Pt(img.Cols(), img.Rows())
		}
		ds.Reports = append(ds.Reports, FrameReport{Path: path, Found: det.Found})
		img.Close()
	}
	return ds, nil
}

// Calibrate runs the joint nonlinear calibration over all accepted views
// and returns the intrinsic parameters together with the RMS reprojection
// error. The caller judges whether the error is acceptable.
func Calibrate(ds *Dataset, opts Options) (Parameters, error) {
	if !opts.Grid.Valid() {
		return Parameters{}, fmt.Errorf("invalid grid %v", opts.Grid)
	}
	if opts.SquareSize <= 0 {
		return Parameters{}, fmt.Errorf("square size must be positive, got %v", opts.SquareSize)
	}
	if ds.Accepted() < MinFrames {
		return Parameters{}, fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientData, ds.Accepted(), MinFrames)
	}

	// The same planar object points (z=0) appear once per view.
	objp := make([]gocv.Point3f, 0, opts.Grid.Count())
	for _, p := range opts.Grid.ObjectPoints(opts.SquareSize) {
		objp = append(objp, gocv.Point3f{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)})
	}

	objectPoints := gocv.NewPoints3fVector()
	defer objectPoints.Close()
	imagePoints := gocv.NewPoints2fVector()
	defer imagePoints.Close()

	for _, view := range ds.Views {
		if len(view) != opts.Grid.Count() {
			return Parameters{}, fmt.Errorf("view has %d corners, grid %v expects %d", len(view), opts.Grid, opts.Grid.Count())
		}
		pts := make([]gocv.Point2f, len(view))
		for i, c := range view {
			pts[i] = gocv.Point2f{X: float32(c.X), Y: float32(c.Y)}
		}
		obj := gocv.NewPoint3fVectorFromPoints(objp)
		objectPoints.Append(obj)
		obj.Close()

		img := gocv.NewPoint2fVectorFromPoints(pts)
		imagePoints.Append(img)
		img.Close()
	}

	cameraMatrix := gocv.NewMat()
	defer cameraMatrix.Close()
	distCoeffs := gocv.NewMat()
	defer distCoeffs.Close()
	rvecs := gocv.NewMat()
	defer rvecs.Close()
	tvecs := gocv.NewMat()
	defer tvecs.Close()

	rms := gocv.CalibrateCamera(objectPoints, imagePoints, ds.ImageSize,
		&cameraMatrix, &distCoeffs, &rvecs, &tvecs, gocv.CalibFlag(0))

	var params Parameters
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			params.CameraMatrix[i][j] = cameraMatrix.GetDoubleAt(i, j)
		}
	}

	// OpenCV hands the distortion vector back as a single row or column
	// depending on version.
	n := distCoeffs.Rows() * distCoeffs.Cols()
	params.DistCoeffs = make([]float64, n)
	for i := 0; i < n; i++ {
		if distCoeffs.Rows() == 1 {
			params.DistCoeffs[i] = distCoeffs.GetDoubleAt(0, i)
		} else {
			params.DistCoeffs[i] = distCoeffs.GetDoubleAt(i, 0)
		}
	}
	params.ReprojectionError = rms

	if err := params.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("calibration produced invalid parameters: %w", err)
	}
	return params, nil
}

// QualityLabel maps an RMS reprojection error to the qualitative bands
// from the lab handout. Diagnostic only.
func QualityLabel(rms float64) string {
	switch {
	case rms < 0.5:
		return "excellent"
	case rms < 1.0:
		return "good"
	case rms < 2.0:
		return "acceptable"
	default:
		return "poor - consider recapturing images"
	}
}
