package pattern

import (
	"math"
	"testing"
)

func TestObjectPointsCountAndPlane(t *testing.T) {
	g := GridSize{Cols: 9, Rows: 7}
	pts := g.ObjectPoints(16.5)

	if len(pts) != 63 {
		t.Fatalf("got %d points, want 63", len(pts))
	}
	for i, p := range pts {
		if p.Z != 0 {
			t.Fatalf("point %d has z=%v, want 0", i, p.Z)
		}
	}
}

func TestObjectPointsSpacing(t *testing.T) {
	g := GridSize{Cols: 4, Rows: 3}
	pts := g.ObjectPoints(10)

	// Column-fastest ordering: neighbors along a row differ by one square
	// in X only.
	if d := pts[1].Sub(pts[0]); d.X != 10 || d.Y != 0 {
		t.Fatalf("row step = %+v, want (10,0,0)", d)
	}
	// Start of the second row.
	if d := pts[4].Sub(pts[0]); d.X != 0 || d.Y != 10 {
		t.Fatalf("column step = %+v, want (0,10,0)", d)
	}
	last := pts[len(pts)-1]
	if math.Abs(last.X-30) > 1e-12 || math.Abs(last.Y-20) > 1e-12 {
		t.Fatalf("last corner = %+v, want (30,20,0)", last)
	}
}

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid("9x7")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.Cols != 9 || g.Rows != 7 {
		t.Fatalf("got %+v", g)
	}

	for _, bad := range []string{"", "9", "1x7", "9x1", "x", "axb"} {
		if _, err := ParseGrid(bad); err == nil {
			t.Errorf("ParseGrid(%q) accepted invalid input", bad)
		}
	}
}

func TestDetectionZeroValueIsNotFound(t *testing.T) {
	var d Detection
	if d.Found {
		t.Fatal("zero Detection must report not found")
	}
}
