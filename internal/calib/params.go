// Package calib provides camera calibration: the intrinsic parameter
// model, its YAML persistence, and the chessboard calibration solver.
package calib

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gocv.io/x/gocv"
)

// Parameters holds the intrinsic camera model produced by calibration:
// the 3x3 camera matrix (row-major) and the lens distortion coefficients
// (k1, k2, p1, p2, k3[, ...]). ReprojectionError is the RMS error the
// solver reported, kept as a quality diagnostic.
type Parameters struct {
	CameraMatrix      [3][3]float64
	DistCoeffs        []float64
	ReprojectionError float64
}

// Fx returns the horizontal focal length in pixels.
func (p Parameters) Fx() float64 { return p.CameraMatrix[0][0] }

// Fy returns the vertical focal length in pixels.
func (p Parameters) Fy() float64 { return p.CameraMatrix[1][1] }

// Cx returns the principal point x coordinate.
func (p Parameters) Cx() float64 { return p.CameraMatrix[0][2] }

// Cy returns the principal point y coordinate.
func (p Parameters) Cy() float64 { return p.CameraMatrix[1][2] }

// Validate checks that the parameters have a plausible shape.
func (p Parameters) Validate() error {
	if p.Fx() <= 0 || p.Fy() <= 0 {
		return fmt.Errorf("non-positive focal length (fx=%v, fy=%v)", p.Fx(), p.Fy())
	}
	if n := len(p.DistCoeffs); n < 4 || n > 8 {
		return fmt.Errorf("distortion vector has %d coefficients, want 4-8", n)
	}
	return nil
}

// Mats converts the parameters to gocv matrices for use with OpenCV
// routines. The caller owns both mats and must Close them.
func (p Parameters) Mats() (cameraMatrix, distCoeffs gocv.Mat) {
	cameraMatrix = gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cameraMatrix.SetDoubleAt(i, j, p.CameraMatrix[i][j])
		}
	}

	distCoeffs = gocv.NewMatWithSize(1, len(p.DistCoeffs), gocv.MatTypeCV64F)
	for i, d := range p.DistCoeffs {
		distCoeffs.SetDoubleAt(0, i, d)
	}
	return cameraMatrix, distCoeffs
}

// paramsFile is the on-disk YAML layout. It matches the format the lab's
// original tooling writes: camera_matrix as a nested 3x3 list, dist_coeff
// as a nested single-row list.
type paramsFile struct {
	CameraMatrix      [][]float64 `yaml:"camera_matrix"`
	DistCoeff         distCoeff   `yaml:"dist_coeff"`
	ReprojectionError float64     `yaml:"reprojection_error,omitempty"`
}

// distCoeff accepts both the nested [[k1 ... k5]] layout and a flat list.
type distCoeff []float64

func (d *distCoeff) UnmarshalYAML(node *yaml.Node) error {
	var nested [][]float64
	if err := node.Decode(&nested); err == nil {
		if len(nested) != 1 {
			return fmt.Errorf("dist_coeff has %d rows, want 1", len(nested))
		}
		*d = nested[0]
		return nil
	}

	var flat []float64
	if err := node.Decode(&flat); err != nil {
		return fmt.Errorf("dist_coeff: %w", err)
	}
	*d = flat
	return nil
}

func (d distCoeff) MarshalYAML() (interface{}, error) {
	return [][]float64{d}, nil
}

// Save writes the parameters to a YAML file.
func (p Parameters) Save(path string) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid parameters: %w", err)
	}

	doc := paramsFile{
		CameraMatrix: [][]float64{
			append([]float64(nil), p.CameraMatrix[0][:]...),
			append([]float64(nil), p.CameraMatrix[1][:]...),
			append([]float64(nil), p.CameraMatrix[2][:]...),
		},
		DistCoeff:         distCoeff(p.DistCoeffs),
		ReprojectionError: p.ReprojectionError,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal calibration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads parameters from a YAML file written by Save (or by the
// original lab tooling).
func Load(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("read calibration file: %w", err)
	}

	var doc paramsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Parameters{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.CameraMatrix) != 3 {
		return Parameters{}, fmt.Errorf("%s: camera_matrix has %d rows, want 3", path, len(doc.CameraMatrix))
	}

	var p Parameters
	for i, row := range doc.CameraMatrix {
		if len(row) != 3 {
			return Parameters{}, fmt.Errorf("%s: camera_matrix row %d has %d values, want 3", path, i, len(row))
		}
		copy(p.CameraMatrix[i][:], row)
	}
	p.DistCoeffs = append([]float64(nil), doc.DistCoeff...)
	p.ReprojectionError = doc.ReprojectionError

	if err := p.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
