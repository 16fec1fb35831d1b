package projection

import (
	"camlab/pkg/geometry"
)

// PointCloud is an unstructured set of 3D points.
type PointCloud []geometry.Point3D

// Mesh is a wireframe: vertices plus index pairs for the edges.
type Mesh struct {
	Vertices []geometry.Point3D
	Edges    [][2]int
}

// CubeCloud samples points on the surface of an axis-aligned cube
// centered on the origin, n points per edge direction.
func CubeCloud(n int, size float64) PointCloud {
	if n < 2 {
		n = 2
	}
	h := size / 2
	step := size / float64(n-1)

	var cloud PointCloud
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := -h + float64(i)*step
			b := -h + float64(j)*step
			cloud = append(cloud,
				geometry.Point3D{X: a, Y: b, Z: -h},
				geometry.Point3D{X: a, Y: b, Z: h},
				geometry.Point3D{X: a, Y: -h, Z: b},
				geometry.Point3D{X: a, Y: h, Z: b},
				geometry.Point3D{X: -h, Y: a, Z: b},
				geometry.Point3D{X: h, Y: a, Z: b},
			)
		}
	}
	return cloud
}

// HouseMesh returns the classic house wireframe used in the projection
// exercise: a unit cube with a ridged roof.
func HouseMesh() Mesh {
	return Mesh{
		Vertices: []geometry.Point3D{
			{X: -0.5, Y: -0.5, Z: -0.5}, // 0: base
			{X: 0.5, Y: -0.5, Z: -0.5},  // 1
			{X: 0.5, Y: -0.5, Z: 0.5},   // 2
			{X: -0.5, Y: -0.5, Z: 0.5},  // 3
			{X: -0.5, Y: 0.5, Z: -0.5},  // 4: top of walls
			{X: 0.5, Y: 0.5, Z: -0.5},   // 5
			{X: 0.5, Y: 0.5, Z: 0.5},    // 6
			{X: -0.5, Y: 0.5, Z: 0.5},   // 7
			{X: 0, Y: 1.0, Z: -0.5},     // 8: roof ridge
			{X: 0, Y: 1.0, Z: 0.5},      // 9
		},
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0}, // floor
			{4, 5}, {5, 6}, {6, 7}, {7, 4}, // eaves
			{0, 4}, {1, 5}, {2, 6}, {3, 7}, // walls
			{4, 8}, {5, 8}, {6, 9}, {7, 9}, // gables
			{8, 9}, // ridge
		},
	}
}

// Bounds returns the axis-aligned min/max corners of a point set.
func Bounds(pts []geometry.Point2D) (min, max geometry.Point2D) {
	if len(pts) == 0 {
		return geometry.Point2D{}, geometry.Point2D{}
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}
