// Package projection implements the projection assignment: perspective
// and orthographic projection of point clouds and wireframe meshes, with
// figure rendering and bilinear resampling.
package projection

import (
	"camlab/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// View places the camera: an axis-angle rotation and a translation
// applied to world points before projection.
type View struct {
	RVec geometry.Point3D
	TVec geometry.Point3D
}

// Extrinsic returns the 4x4 homogeneous world-to-camera matrix.
func (v View) Extrinsic() *mat.Dense {
	r := geometry.Rodrigues(v.RVec)
	e := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			e.Set(i, j, r[i][j])
		}
	}
	e.Set(0, 3, v.TVec.X)
	e.Set(1, 3, v.TVec.Y)
	e.Set(2, 3, v.TVec.Z)
	e.Set(3, 3, 1)
	return e
}

// Orthographic returns a 3x4 projection matrix that discards depth and
// scales the remaining axes. Parallel lines stay parallel.
func Orthographic(scale float64) *mat.Dense {
	return mat.NewDense(3, 4, []float64{
		scale, 0, 0, 0,
		0, scale, 0, 0,
		0, 0, 0, 1,
	})
}

// Perspective returns a 3x4 pinhole projection matrix with focal length
// f. Depth ends up in the homogeneous coordinate, so distant geometry
// shrinks after the divide.
func Perspective(f float64) *mat.Dense {
	return mat.NewDense(3, 4, []float64{
		f, 0, 0, 0,
		0, f, 0, 0,
		0, 0, 1, 0,
	})
}

// Project applies a camera view and a 3x4 projection matrix to a set of
// world points, performing the homogeneous divide.
func Project(proj *mat.Dense, view View, pts []geometry.Point3D) []geometry.Point2D {
	// Full pipeline matrix: P * E, 3x4.
	var pe mat.Dense
	pe.Mul(proj, view.Extrinsic())

	out := make([]geometry.Point2D, len(pts))
	h := mat.NewVecDense(4, nil)
	var res mat.VecDense
	for i, p := range pts {
		h.SetVec(0, p.X)
		h.SetVec(1, p.Y)
		h.SetVec(2, p.Z)
		h.SetVec(3, 1)
		res.MulVec(&pe, h)

		w := res.AtVec(2)
		if w == 0 {
			// Point on the camera plane; leave it at the origin rather
			// than dividing by zero.
			out[i] = geometry.Point2D{}
			continue
		}
		out[i] = geometry.Point2D{X: res.AtVec(0) / w, Y: res.AtVec(1) / w}
	}
	return out
}
