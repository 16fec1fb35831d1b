package pattern

import (
	"image"

	"camlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// Detect looks for the chessboard pattern in a BGR frame. A miss is a
// normal outcome and is reported through Detection.Found, not an error.
func Detect(frame gocv.Mat, grid GridSize) Detection {
	return detect(frame, grid, false)
}

// DetectRefined is Detect followed by sub-pixel corner refinement. Use
// this when the corners feed the calibration solver; the plain Detect is
// enough for live preview.
func DetectRefined(frame gocv.Mat, grid GridSize) Detection {
	return detect(frame, grid, true)
}

func detect(frame gocv.Mat, grid GridSize, refine bool) Detection {
	if frame.Empty() || !grid.Valid() {
		return Detection{}
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	corners := gocv.NewMat()
	defer corners.Close()

	size := image.Pt(grid.Cols, grid.Rows)
	flags := gocv.CalibCBAdaptiveThresh | gocv.CalibCBNormalizeImage
	found := gocv.FindChessboardCorners(gray, size, &corners, flags)
	if !found || corners.Rows() != grid.Count() {
		return Detection{}
	}

	if refine {
		criteria := gocv.NewTermCriteria(gocv.MaxIter|gocv.EPS, 30, 0.001)
		gocv.CornerSubPix(gray, &corners, image.Pt(11, 11), image.Pt(-1, -1), criteria)
	}

	det := Detection{Found: true}
	for i := 0; i < corners.Rows(); i++ {
		v := corners.GetVecfAt(i, 0)
		det.Corners = append(det.Corners, geometry.Point2D{X: float64(v[0]), Y: float64(v[1])})
	}
	return det
}

// DrawCorners overlays detected corners on a frame, in the familiar
// rainbow-per-row style.
func DrawCorners(frame *gocv.Mat, grid GridSize, det Detection) {
	if !det.Found {
		return
	}

	corners := gocv.NewMatWithSize(len(det.Corners), 1, gocv.MatTypeCV32FC2)
	defer corners.Close()
	for i, c := range det.Corners {
		corners.SetFloatAt(i, 0, float32(c.X))
		corners.SetFloatAt(i, 1, float32(c.Y))
	}

	gocv.DrawChessboardCorners(frame, image.Pt(grid.Cols, grid.Rows), corners, true)
}
