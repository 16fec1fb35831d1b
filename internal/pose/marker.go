// Package pose provides ArUco marker detection and 6DOF pose estimation.
package pose

import (
	"camlab/pkg/geometry"
)

// Marker is one detected fiducial: its dictionary ID and four corner
// pixel coordinates in detection order (top-left, top-right,
// bottom-right, bottom-left).
type Marker struct {
	ID      int
	Corners [4]geometry.Point2D
}

// Center returns the mean of the four corners, used to anchor overlay
// text.
func (m Marker) Center() geometry.Point2D {
	var c geometry.Point2D
	for _, p := range m.Corners {
		c = c.Add(p)
	}
	return c.Scale(0.25)
}

// Detection is the per-frame detection result. An empty Markers slice is
// the expected no-marker case, not an error.
type Detection struct {
	Markers []Marker
}

// Pose is the 6DOF pose of one marker relative to the camera: an
// axis-angle rotation vector and a translation vector in the marker-size
// unit (the lab uses meters). Recomputed every frame, never persisted.
type Pose struct {
	RVec geometry.Point3D
	TVec geometry.Point3D
}

// Distance returns the straight-line distance from the camera to the
// marker center.
func (p Pose) Distance() float64 {
	return p.TVec.Norm()
}

// EulerDegrees returns roll, pitch and yaw in degrees.
func (p Pose) EulerDegrees() (roll, pitch, yaw float64) {
	return geometry.Rodrigues(p.RVec).EulerDegrees()
}

// markerObjectPoints returns the marker corners in the marker's own
// frame, centered on the origin with z=0, matching detection corner
// order.
func markerObjectPoints(size float64) [4]geometry.Point3D {
	h := size / 2
	return [4]geometry.Point3D{
		{X: -h, Y: h},  // top-left
		{X: h, Y: h},   // top-right
		{X: h, Y: -h},  // bottom-right
		{X: -h, Y: -h}, // bottom-left
	}
}
