package pose

import (
	"fmt"

	"camlab/internal/calib"
	"camlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// Estimator solves marker poses from detections using the calibrated
// camera model and the known physical marker size.
type Estimator struct {
	params       calib.Parameters
	markerSize   float64
	cameraMatrix gocv.Mat
	distCoeffs   gocv.Mat
}

// NewEstimator prepares an estimator. markerSize is the marker edge
// length in the unit poses should come back in (the lab uses meters).
func NewEstimator(params calib.Parameters, markerSize float64) (*Estimator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("calibration parameters: %w", err)
	}
	if markerSize <= 0 {
		return nil, fmt.Errorf("marker size must be positive, got %v", markerSize)
	}

	cameraMatrix, distCoeffs := params.Mats()
	return &Estimator{
		params:       params,
		markerSize:   markerSize,
		cameraMatrix: cameraMatrix,
		distCoeffs:   distCoeffs,
	}, nil
}

// Params returns the calibration parameters the estimator was built with.
func (e *Estimator) Params() calib.Parameters {
	return e.params
}

// MarkerSize returns the configured marker edge length.
func (e *Estimator) MarkerSize() float64 {
	return e.markerSize
}

// Estimate solves the perspective-n-point problem for one detected
// marker, giving its pose in the camera frame.
func (e *Estimator) Estimate(m Marker) (Pose, error) {
	objp := markerObjectPoints(e.markerSize)

	obj := make([]gocv.Point3f, 4)
	img := make([]gocv.Point2f, 4)
	for i := 0; i < 4; i++ {
		obj[i] = gocv.Point3f{X: float32(objp[i].X), Y: float32(objp[i].Y), Z: float32(objp[i].Z)}
		img[i] = gocv.Point2f{X: float32(m.Corners[i].X), Y: float32(m.Corners[i].Y)}
	}

	objVec := gocv.NewPoint3fVectorFromPoints(obj)
	defer objVec.Close()
	imgVec := gocv.NewPoint2fVectorFromPoints(img)
	defer imgVec.Close()

	rvec := gocv.NewMat()
	defer rvec.Close()
	tvec := gocv.NewMat()
	defer tvec.Close()

	if ok := gocv.SolvePnP(objVec, imgVec, e.cameraMatrix, e.distCoeffs, &rvec, &tvec, false, 0); !ok {
		return Pose{}, fmt.Errorf("PnP solve failed for marker %d", m.ID)
	}

	return Pose{
		RVec: vec3At(rvec),
		TVec: vec3At(tvec),
	}, nil
}

// Close releases the estimator's mats.
func (e *Estimator) Close() {
	e.cameraMatrix.Close()
	e.distCoeffs.Close()
}

// vec3At reads a 3x1 (or 1x3) double mat into a Point3D.
func vec3At(m gocv.Mat) geometry.Point3D {
	get := func(i int) float64 {
		if m.Rows() >= 3 {
			return m.GetDoubleAt(i, 0)
		}
		return m.GetDoubleAt(0, i)
	}
	return geometry.Point3D{X: get(0), Y: get(1), Z: get(2)}
}
