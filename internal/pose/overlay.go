package pose

import (
	"fmt"
	"image"
	"image/color"

	"camlab/internal/calib"
	"camlab/pkg/geometry"

	"gocv.io/x/gocv"
)

var (
	colorAxisX  = color.RGBA{R: 255}             // red
	colorAxisY  = color.RGBA{G: 255}             // green
	colorAxisZ  = color.RGBA{B: 255}             // blue
	colorBorder = color.RGBA{G: 255}             // marker outline
	colorText   = color.RGBA{G: 255}             // pose readout
	colorMiss   = color.RGBA{R: 255}             // "no marker" banner
	colorLegend = color.RGBA{R: 255, G: 255, B: 255}
)

// DrawMarkers outlines every detected marker with its ID.
func DrawMarkers(frame *gocv.Mat, det Detection) {
	for _, m := range det.Markers {
		for i := 0; i < 4; i++ {
			a := m.Corners[i].Round()
			b := m.Corners[(i+1)%4].Round()
			gocv.Line(frame, image.Pt(a.X, a.Y), image.Pt(b.X, b.Y), colorBorder, 2)
		}
		tl := m.Corners[0].Round()
		gocv.PutText(frame, fmt.Sprintf("id=%d", m.ID), image.Pt(tl.X, tl.Y-8),
			gocv.FontHersheySimplex, 0.5, colorBorder, 2)
	}
}

// DrawAxes projects a 3D axis triad onto the marker and draws it, scaled
// to 70% of the marker edge: X red, Y green, Z blue.
func DrawAxes(frame *gocv.Mat, params calib.Parameters, p Pose, markerSize float64) {
	length := markerSize * 0.7
	pts := params.ProjectPoints([]geometry.Point3D{
		{},          // marker center
		{X: length}, // +X
		{Y: length}, // +Y
		{Z: length}, // +Z, out of the marker plane
	}, p.RVec, p.TVec)

	origin := pts[0].Round()
	o := image.Pt(origin.X, origin.Y)
	for i, c := range []color.RGBA{colorAxisX, colorAxisY, colorAxisZ} {
		end := pts[i+1].Round()
		gocv.Line(frame, o, image.Pt(end.X, end.Y), c, 3)
	}
}

// DrawPoseInfo writes the distance/position/rotation readout next to a
// marker.
func DrawPoseInfo(frame *gocv.Mat, m Marker, p Pose) {
	roll, pitch, yaw := p.EulerDegrees()
	lines := []string{
		fmt.Sprintf("ID: %d | Dist: %.2fm", m.ID, p.Distance()),
		fmt.Sprintf("Pos: X=%.2f Y=%.2f Z=%.2f", p.TVec.X, p.TVec.Y, p.TVec.Z),
		fmt.Sprintf("Rot: R=%.1f P=%.1f Y=%.1f", roll, pitch, yaw),
	}

	c := m.Center().Round()
	y := c.Y - 70
	for _, line := range lines {
		gocv.PutText(frame, line, image.Pt(c.X-80, y), gocv.FontHersheySimplex, 0.5, colorText, 2)
		y += 20
	}
}

// DrawNoMarkerBanner annotates a frame where detection found nothing.
func DrawNoMarkerBanner(frame *gocv.Mat) {
	gocv.PutText(frame, "No ArUco marker detected", image.Pt(10, 30),
		gocv.FontHersheySimplex, 0.8, colorMiss, 2)
}

// DrawAxisLegend labels the axis colors in the frame corner.
func DrawAxisLegend(frame *gocv.Mat) {
	gocv.PutText(frame, "Axes:", image.Pt(10, 60), gocv.FontHersheySimplex, 0.5, colorLegend, 1)
	gocv.PutText(frame, "X", image.Pt(60, 60), gocv.FontHersheySimplex, 0.5, colorAxisX, 2)
	gocv.PutText(frame, "Y", image.Pt(80, 60), gocv.FontHersheySimplex, 0.5, colorAxisY, 2)
	gocv.PutText(frame, "Z", image.Pt(100, 60), gocv.FontHersheySimplex, 0.5, colorAxisZ, 2)
}
