// Command calibrate computes camera intrinsics from captured chessboard
// frames and writes them to a YAML parameter file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"camlab/internal/calib"
	"camlab/internal/pattern"
	"camlab/internal/version"
)

func main() {
	dir := flag.String("dir", "calib_images", "Directory with captured frames")
	gridSpec := flag.String("grid", pattern.DefaultGrid.String(), "Inner corner grid as COLSxROWS")
	squareSize := flag.Float64("square", 16.5, "Chessboard square edge in millimeters")
	out := flag.String("out", "calibration.yaml", "Output calibration file")
	flag.Parse()

	grid, err := pattern.ParseGrid(*gridSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("==================================================")
	fmt.Printf("CAMERA CALIBRATION - Solve (camlab v%s)\n", version.Version)
	fmt.Println("==================================================")
	fmt.Println("\nConfiguration:")
	fmt.Printf("  - Image directory: %s\n", *dir)
	fmt.Printf("  - Chessboard size: %v inner corners\n", grid)
	fmt.Printf("  - Square size: %.1f mm\n", *squareSize)
	fmt.Printf("  - Output file: %s\n", *out)
	fmt.Println("==================================================")

	ds, err := calib.LoadDir(*dir, grid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %v\n", err)
		fmt.Fprintln(os.Stderr, "  Run the capture tool first.")
		os.Exit(1)
	}

	fmt.Printf("\nFound %d images. Processing...\n", len(ds.Reports))
	fmt.Println("--------------------------------------------------")
	for _, r := range ds.Reports {
		name := filepath.Base(r.Path)
		switch {
		case r.Err != nil:
			fmt.Printf("  x %s: %v\n", name, r.Err)
		case r.Found:
			fmt.Printf("  + %s: chessboard detected\n", name)
		default:
			fmt.Printf("  x %s: chessboard NOT detected\n", name)
		}
	}
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Results: %d usable, %d skipped\n", ds.Accepted(), len(ds.Reports)-ds.Accepted())

	if ds.Accepted() < calib.RecommendedFrames {
		fmt.Printf("\nNote: %d frames is below the recommended %d; expect a less stable solve.\n",
			ds.Accepted(), calib.RecommendedFrames)
	}

	params, err := calib.Calibrate(ds, calib.Options{Grid: grid, SquareSize: *squareSize})
	if err != nil {
		if errors.Is(err, calib.ErrInsufficientData) {
			fmt.Fprintf(os.Stderr, "\nERROR: %v\n", err)
			fmt.Fprintln(os.Stderr, "  Tips: better lighting, hold the board steady, check -grid.")
		} else {
			fmt.Fprintf(os.Stderr, "\nERROR: calibration failed: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("\n==================================================")
	fmt.Println("CALIBRATION RESULTS")
	fmt.Println("==================================================")
	fmt.Printf("\nReprojection error: %.4f px RMS (%s)\n",
		params.ReprojectionError, calib.QualityLabel(params.ReprojectionError))
	fmt.Println("\nCamera matrix (intrinsics):")
	fmt.Printf("  Focal length fx: %.2f px\n", params.Fx())
	fmt.Printf("  Focal length fy: %.2f px\n", params.Fy())
	fmt.Printf("  Principal point cx: %.2f px\n", params.Cx())
	fmt.Printf("  Principal point cy: %.2f px\n", params.Cy())
	fmt.Println("\nDistortion coefficients:")
	labels := []string{"k1", "k2", "p1", "p2", "k3", "k4", "k5", "k6"}
	for i, d := range params.DistCoeffs {
		label := fmt.Sprintf("c%d", i)
		if i < len(labels) {
			label = labels[i]
		}
		fmt.Printf("  %s: %+.6f\n", label, d)
	}

	if err := params.Save(*out); err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n==================================================")
	fmt.Printf("Calibration saved to %s\n", *out)
	fmt.Println("==================================================")
}
