package calib

import (
	"math"
	"testing"

	"camlab/pkg/geometry"
)

func idealParams() Parameters {
	return Parameters{
		CameraMatrix: [3][3]float64{
			{800, 0, 320},
			{0, 800, 240},
			{0, 0, 1},
		},
		DistCoeffs: []float64{0, 0, 0, 0, 0},
	}
}

func TestProjectPointPrincipalRay(t *testing.T) {
	p := idealParams()
	// A point straight ahead lands on the principal point regardless of depth.
	got := p.ProjectPoint(geometry.NewPoint3D(0, 0, 2), geometry.Point3D{}, geometry.Point3D{})
	if math.Abs(got.X-320) > 1e-9 || math.Abs(got.Y-240) > 1e-9 {
		t.Fatalf("got %+v, want principal point (320,240)", got)
	}
}

func TestProjectPointAnalytic(t *testing.T) {
	p := idealParams()
	// u = fx * X/Z + cx = 800 * 0.1/1.0 + 320 = 400
	// v = fy * Y/Z + cy = 800 * -0.05/1.0 + 240 = 200
	got := p.ProjectPoint(geometry.NewPoint3D(0.1, -0.05, 1), geometry.Point3D{}, geometry.Point3D{})
	if math.Abs(got.X-400) > 1e-9 || math.Abs(got.Y-200) > 1e-9 {
		t.Fatalf("got %+v, want (400,200)", got)
	}
}

func TestProjectPointTranslationOnly(t *testing.T) {
	p := idealParams()
	// Moving the point with the world or with tvec must agree.
	world := geometry.NewPoint3D(0.02, 0.03, 0)
	tvec := geometry.NewPoint3D(0, 0, 0.5)
	a := p.ProjectPoint(world, geometry.Point3D{}, tvec)
	b := p.ProjectPoint(world.Add(tvec), geometry.Point3D{}, geometry.Point3D{})
	if a.Distance(b) > 1e-9 {
		t.Fatalf("translation mismatch: %+v vs %+v", a, b)
	}
}

func TestProjectPointRadialDistortionPushesOutward(t *testing.T) {
	p := idealParams()
	p.DistCoeffs = []float64{0.2, 0, 0, 0, 0} // positive k1: barrel-opposite, points move outward

	off := geometry.NewPoint3D(0.1, 0, 1)
	undist := idealParams().ProjectPoint(off, geometry.Point3D{}, geometry.Point3D{})
	dist := p.ProjectPoint(off, geometry.Point3D{}, geometry.Point3D{})

	if dist.X <= undist.X {
		t.Fatalf("positive k1 should push point away from center: %v vs %v", dist.X, undist.X)
	}
	// On-axis point is unaffected by radial distortion.
	center := p.ProjectPoint(geometry.NewPoint3D(0, 0, 1), geometry.Point3D{}, geometry.Point3D{})
	if math.Abs(center.X-320) > 1e-9 {
		t.Fatalf("on-axis point moved: %+v", center)
	}
}

func TestProjectPointWithRotation(t *testing.T) {
	p := idealParams()
	// Rotating the camera frame 90 degrees about Z swaps the image axes:
	// the world X offset shows up in v instead of u.
	rvec := geometry.NewPoint3D(0, 0, math.Pi/2)
	tvec := geometry.NewPoint3D(0, 0, 1)
	got := p.ProjectPoint(geometry.NewPoint3D(0.1, 0, 0), rvec, tvec)
	if math.Abs(got.X-320) > 1e-6 {
		t.Fatalf("u = %v, want 320", got.X)
	}
	if math.Abs(got.Y-(240+80)) > 1e-6 {
		t.Fatalf("v = %v, want 320", got.Y)
	}
}
