package calib

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func testParams() Parameters {
	return Parameters{
		CameraMatrix: [3][3]float64{
			{812.345678901, 0, 321.098765432},
			{0, 814.111213141, 239.151617181},
			{0, 0, 1},
		},
		DistCoeffs:        []float64{0.12345, -0.23456, 0.00123, -0.00234, 0.04567},
		ReprojectionError: 0.4321,
	}
}

func TestParamsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.yaml")

	want := testParams()
	if err := want.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(got.CameraMatrix[i][j]-want.CameraMatrix[i][j]) > 1e-9 {
				t.Errorf("camera matrix [%d][%d] = %v, want %v", i, j, got.CameraMatrix[i][j], want.CameraMatrix[i][j])
			}
		}
	}
	if len(got.DistCoeffs) != len(want.DistCoeffs) {
		t.Fatalf("got %d dist coeffs, want %d", len(got.DistCoeffs), len(want.DistCoeffs))
	}
	for i := range want.DistCoeffs {
		if math.Abs(got.DistCoeffs[i]-want.DistCoeffs[i]) > 1e-9 {
			t.Errorf("dist[%d] = %v, want %v", i, got.DistCoeffs[i], want.DistCoeffs[i])
		}
	}
	if math.Abs(got.ReprojectionError-want.ReprojectionError) > 1e-9 {
		t.Errorf("reprojection error = %v, want %v", got.ReprojectionError, want.ReprojectionError)
	}
}

func TestLoadAcceptsFlatDistCoeff(t *testing.T) {
	// The nested [[...]] layout is what numpy's tolist() emits, but a
	// hand-written file may use a flat list.
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	doc := `camera_matrix:
- [800.0, 0.0, 320.0]
- [0.0, 800.0, 240.0]
- [0.0, 0.0, 1.0]
dist_coeff: [0.1, -0.2, 0.001, 0.002, 0.03]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Fx() != 800 || p.Cy() != 240 {
		t.Fatalf("unexpected matrix: %+v", p.CameraMatrix)
	}
	if len(p.DistCoeffs) != 5 || p.DistCoeffs[4] != 0.03 {
		t.Fatalf("unexpected dist coeffs: %v", p.DistCoeffs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"garbage":    "{{{not yaml",
		"wrong rows": "camera_matrix: [[1, 0, 0], [0, 1, 0]]\ndist_coeff: [[0, 0, 0, 0, 0]]\n",
		"wrong cols": "camera_matrix: [[1, 0], [0, 1], [0, 0]]\ndist_coeff: [[0, 0, 0, 0, 0]]\n",
		"no dist":    "camera_matrix: [[800, 0, 320], [0, 800, 240], [0, 0, 1]]\n",
	}
	for name, doc := range cases {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("case %q: expected error", name)
		}
	}
}

func TestSaveRejectsInvalidParameters(t *testing.T) {
	p := Parameters{} // zero focal length, no distortion
	if err := p.Save(filepath.Join(t.TempDir(), "bad.yaml")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCalibrateInsufficientData(t *testing.T) {
	ds := &Dataset{}
	_, err := Calibrate(ds, DefaultOptions())
	if err == nil {
		t.Fatal("expected error for empty dataset")
	}
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("error = %v, want ErrInsufficientData", err)
	}
}
