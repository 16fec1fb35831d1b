package calib

import (
	"camlab/pkg/geometry"
)

// ProjectPoint maps a single world-frame point into pixel coordinates
// using the full pinhole model with radial and tangential distortion.
// rvec/tvec give the world-to-camera transform in OpenCV's axis-angle
// convention. A pure Go implementation so pose overlays and tests don't
// round-trip through OpenCV mats for a handful of points.
func (p Parameters) ProjectPoint(world geometry.Point3D, rvec, tvec geometry.Point3D) geometry.Point2D {
	cam := geometry.Rodrigues(rvec).MulVec(world).Add(tvec)

	// Normalized image plane.
	x := cam.X / cam.Z
	y := cam.Y / cam.Z

	// Distortion model: k1, k2, p1, p2, k3. Higher-order coefficients,
	// if present, are ignored here.
	var k1, k2, p1, p2, k3 float64
	d := p.DistCoeffs
	if len(d) > 0 {
		k1 = d[0]
	}
	if len(d) > 1 {
		k2 = d[1]
	}
	if len(d) > 2 {
		p1 = d[2]
	}
	if len(d) > 3 {
		p2 = d[3]
	}
	if len(d) > 4 {
		k3 = d[4]
	}

	r2 := x*x + y*y
	radial := 1 + k1*r2 + k2*r2*r2 + k3*r2*r2*r2
	xd := x*radial + 2*p1*x*y + p2*(r2+2*x*x)
	yd := y*radial + p1*(r2+2*y*y) + 2*p2*x*y

	return geometry.Point2D{
		X: p.Fx()*xd + p.Cx(),
		Y: p.Fy()*yd + p.Cy(),
	}
}

// ProjectPoints maps a set of world-frame points into pixel coordinates.
func (p Parameters) ProjectPoints(world []geometry.Point3D, rvec, tvec geometry.Point3D) []geometry.Point2D {
	out := make([]geometry.Point2D, len(world))
	for i, w := range world {
		out[i] = p.ProjectPoint(w, rvec, tvec)
	}
	return out
}
