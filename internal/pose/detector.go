package pose

import (
	"fmt"
	"sort"
	"strings"

	"camlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// Dictionaries the CLI can name. 4x4_250 is the lab default.
var dictionaries = map[string]gocv.ArucoDictionaryCode{
	"4x4_50":   gocv.ArucoDict4x4_50,
	"4x4_100":  gocv.ArucoDict4x4_100,
	"4x4_250":  gocv.ArucoDict4x4_250,
	"4x4_1000": gocv.ArucoDict4x4_1000,
	"5x5_50":   gocv.ArucoDict5x5_50,
	"5x5_100":  gocv.ArucoDict5x5_100,
	"5x5_250":  gocv.ArucoDict5x5_250,
	"6x6_250":  gocv.ArucoDict6x6_250,
	"7x7_250":  gocv.ArucoDict7x7_250,
	"original": gocv.ArucoDictArucoOriginal,
}

// DictionaryNames lists the accepted -dict values.
func DictionaryNames() []string {
	names := make([]string, 0, len(dictionaries))
	for name := range dictionaries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detector finds ArUco markers in frames.
type Detector struct {
	det gocv.ArucoDetector
}

// NewDetector creates a detector for the named dictionary.
func NewDetector(dictName string) (*Detector, error) {
	code, ok := dictionaries[strings.ToLower(dictName)]
	if !ok {
		return nil, fmt.Errorf("unknown ArUco dictionary %q (have: %s)",
			dictName, strings.Join(DictionaryNames(), ", "))
	}

	dict := gocv.GetPredefinedDictionary(code)
	params := gocv.NewArucoDetectorParameters()
	return &Detector{det: gocv.NewArucoDetectorWithParams(dict, params)}, nil
}

// Detect finds all markers in a BGR frame. No markers is a normal
// outcome, reported as an empty Detection.
func (d *Detector) Detect(frame gocv.Mat) Detection {
	if frame.Empty() {
		return Detection{}
	}

	corners, ids, _ := d.det.DetectMarkers(frame)

	var det Detection
	for i, id := range ids {
		if i >= len(corners) || len(corners[i]) != 4 {
			continue
		}
		m := Marker{ID: id}
		for j, c := range corners[i] {
			m.Corners[j] = geometry.Point2D{X: float64(c.X), Y: float64(c.Y)}
		}
		det.Markers = append(det.Markers, m)
	}
	return det
}

// Close releases the detector.
func (d *Detector) Close() error {
	return d.det.Close()
}
