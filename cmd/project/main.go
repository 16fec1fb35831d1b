// Command project renders the projection assignment figures: the house
// wireframe and a cube point cloud under perspective and orthographic
// cameras, written as PNG files.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"camlab/internal/projection"
	"camlab/internal/version"
	"camlab/pkg/geometry"
)

func main() {
	out := flag.String("out", "figures", "Output directory for PNG figures")
	focal := flag.Float64("f", 2.0, "Perspective focal length")
	dist := flag.Float64("dist", 5.0, "Camera distance from the model")
	yawDeg := flag.Float64("yaw", 30, "View yaw in degrees")
	pitchDeg := flag.Float64("pitch", -20, "View pitch in degrees")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: create %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Projection assignment figures (camlab v%s)\n", version.Version)

	view := projection.View{
		RVec: geometry.NewPoint3D(*pitchDeg*math.Pi/180, *yawDeg*math.Pi/180, 0),
		TVec: geometry.NewPoint3D(0, 0, *dist),
	}
	house := projection.HouseMesh()
	cloud := projection.CubeCloud(8, 2)

	figures := []struct {
		name   string
		render func(fig *projection.Figure)
	}{
		{"house_perspective", func(fig *projection.Figure) {
			pts := projection.Project(projection.Perspective(*focal), view, house.Vertices)
			fig.DrawEdges(pts, house.Edges)
			fig.DrawPoints(pts)
		}},
		{"house_orthographic", func(fig *projection.Figure) {
			pts := projection.Project(projection.Orthographic(1), view, house.Vertices)
			fig.DrawEdges(pts, house.Edges)
			fig.DrawPoints(pts)
		}},
		{"cloud_perspective", func(fig *projection.Figure) {
			fig.DrawPoints(projection.Project(projection.Perspective(*focal), view, cloud))
		}},
		{"cloud_orthographic", func(fig *projection.Figure) {
			fig.DrawPoints(projection.Project(projection.Orthographic(1), view, cloud))
		}},
	}

	for _, f := range figures {
		fig := projection.NewFigure(projection.DefaultFigureOptions())
		f.render(fig)

		path := filepath.Join(*out, f.name+".png")
		if err := fig.SavePNG(path); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}
