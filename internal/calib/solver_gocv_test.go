package calib

import (
	"errors"
	"image"
	"math"
	"testing"

	"camlab/internal/pattern"
	"camlab/pkg/geometry"
)

// syntheticDataset projects the chessboard through a known camera from a
// set of distinct viewpoints. Noiseless observations, so the solve should
// recover the ground truth almost exactly.
func syntheticDataset(t *testing.T, truth Parameters, opts Options, nViews int) *Dataset {
	t.Helper()

	objp := opts.Grid.ObjectPoints(opts.SquareSize)

	// Center the board in front of the camera; SquareSize is in mm, so
	// translations are too.
	boardW := float64(opts.Grid.Cols-1) * opts.SquareSize
	boardH := float64(opts.Grid.Rows-1) * opts.SquareSize

	ds := &Dataset{ImageSize: image.Pt(640, 480)}
	for i := 0; i < nViews; i++ {
		// Vary tilt and position so the views are not degenerate.
		ang := float64(i) * 2 * math.Pi / float64(nViews)
		rvec := geometry.NewPoint3D(0.35*math.Sin(ang), 0.35*math.Cos(ang), 0.1*math.Sin(2*ang))
		tvec := geometry.NewPoint3D(
			-boardW/2+30*math.Cos(ang),
			-boardH/2+30*math.Sin(ang),
			420+25*float64(i%4),
		)

		view := truth.ProjectPoints(objp, rvec, tvec)
		for _, c := range view {
			if c.X < 0 || c.Y < 0 || c.X >= 640 || c.Y >= 480 {
				t.Fatalf("view %d: corner %+v projects off-frame; adjust test geometry", i, c)
			}
		}
		ds.Views = append(ds.Views, view)
	}
	return ds
}

func TestCalibrateRecoversSyntheticCamera(t *testing.T) {
	truth := Parameters{
		CameraMatrix: [3][3]float64{
			{800, 0, 320},
			{0, 800, 240},
			{0, 0, 1},
		},
		DistCoeffs: []float64{0, 0, 0, 0, 0},
	}
	opts := DefaultOptions()
	ds := syntheticDataset(t, truth, opts, 12)

	params, err := Calibrate(ds, opts)
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}

	if params.ReprojectionError >= 1.0 {
		t.Errorf("RMS reprojection error = %v, want < 1.0", params.ReprojectionError)
	}
	// 1% tolerance on focal lengths, 5px on the principal point.
	if math.Abs(params.Fx()-truth.Fx()) > 0.01*truth.Fx() {
		t.Errorf("fx = %v, want %v", params.Fx(), truth.Fx())
	}
	if math.Abs(params.Fy()-truth.Fy()) > 0.01*truth.Fy() {
		t.Errorf("fy = %v, want %v", params.Fy(), truth.Fy())
	}
	if math.Abs(params.Cx()-truth.Cx()) > 5 {
		t.Errorf("cx = %v, want %v", params.Cx(), truth.Cx())
	}
	if math.Abs(params.Cy()-truth.Cy()) > 5 {
		t.Errorf("cy = %v, want %v", params.Cy(), truth.Cy())
	}
}

func TestCalibrateIdempotent(t *testing.T) {
	truth := Parameters{
		CameraMatrix: [3][3]float64{
			{750, 0, 310},
			{0, 760, 250},
			{0, 0, 1},
		},
		DistCoeffs: []float64{0, 0, 0, 0, 0},
	}
	opts := DefaultOptions()
	ds := syntheticDataset(t, truth, opts, 12)

	first, err := Calibrate(ds, opts)
	if err != nil {
		t.Fatalf("first solve: %v", err)
	}
	second, err := Calibrate(ds, opts)
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}

	// Identical input, deterministic solver: results agree tightly.
	if math.Abs(first.Fx()-second.Fx()) > 1e-6 ||
		math.Abs(first.Fy()-second.Fy()) > 1e-6 {
		t.Errorf("focal lengths differ between runs: %v/%v vs %v/%v",
			first.Fx(), first.Fy(), second.Fx(), second.Fy())
	}
	if math.Abs(first.ReprojectionError-second.ReprojectionError) > 1e-9 {
		t.Errorf("rms differs between runs: %v vs %v", first.ReprojectionError, second.ReprojectionError)
	}
}

func TestCalibrateTooFewViews(t *testing.T) {
	truth := Parameters{
		CameraMatrix: [3][3]float64{{800, 0, 320}, {0, 800, 240}, {0, 0, 1}},
		DistCoeffs:   []float64{0, 0, 0, 0, 0},
	}
	opts := DefaultOptions()
	ds := syntheticDataset(t, truth, opts, 12)
	ds.Views = ds.Views[:2]

	_, err := Calibrate(ds, opts)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("error = %v, want ErrInsufficientData", err)
	}
}

func TestCalibrateRejectsCornerCountMismatch(t *testing.T) {
	opts := Options{Grid: pattern.GridSize{Cols: 9, Rows: 7}, SquareSize: 16.5}
	ds := &Dataset{ImageSize: image.Pt(640, 480)}
	for i := 0; i < MinFrames; i++ {
		ds.Views = append(ds.Views, make([]geometry.Point2D, 10)) // wrong count
	}
	if _, err := Calibrate(ds, opts); err == nil {
		t.Fatal("expected error for corner count mismatch")
	}
}
