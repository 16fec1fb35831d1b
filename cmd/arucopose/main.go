// Command arucopose estimates the 6DOF pose of ArUco markers in a live
// camera feed or a video file, using a saved camera calibration.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"camlab/internal/calib"
	"camlab/internal/pose"
	"camlab/internal/version"
	"camlab/internal/video"

	"gocv.io/x/gocv"
)

func main() {
	src := flag.String("src", "0", "Camera index or video file path")
	calibFile := flag.String("calib", "calibration.yaml", "Camera calibration file")
	markerSize := flag.Float64("marker", 0.094, "Marker edge length in meters")
	dict := flag.String("dict", "4x4_250", "ArUco dictionary")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	params, err := calib.Load(*calibFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		fmt.Fprintln(os.Stderr, "  Run the calibrate tool first.")
		os.Exit(1)
	}

	detector, err := pose.NewDetector(*dict)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer detector.Close()

	estimator, err := pose.NewEstimator(params, *markerSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer estimator.Close()

	fmt.Println("============================================================")
	fmt.Printf("ArUco POSE ESTIMATION (camlab v%s)\n", version.Version)
	fmt.Println("============================================================")
	fmt.Printf("\nLoaded calibration from %s (reproj %.4f px)\n", *calibFile, params.ReprojectionError)
	fmt.Println("\nConfiguration:")
	fmt.Printf("  - Marker size: %.1f cm\n", *markerSize*100)
	fmt.Printf("  - Dictionary: %s\n", strings.ToLower(*dict))
	fmt.Println("\nCoordinate system:")
	fmt.Println("  - X: right (red), Y: down (green), Z: forward (blue)")
	fmt.Println("\nControls:")
	fmt.Println("  [ESC]/[Q] - Quit")
	fmt.Println("  [P]       - Print detailed pose to terminal")
	fmt.Println("============================================================")

	stream, err := video.Open(*src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer stream.Close()

	display := video.NewDisplay("ArUco Pose")
	defer display.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	printDetailed := false
	for {
		if !stream.Read(&frame) {
			log.Printf("stream %s ended", stream.Desc())
			return
		}

		det := detector.Detect(frame)

		show := frame.Clone()
		if len(det.Markers) == 0 {
			pose.DrawNoMarkerBanner(&show)
		} else {
			pose.DrawMarkers(&show, det)
			for _, m := range det.Markers {
				p, err := estimator.Estimate(m)
				if err != nil {
					log.Printf("marker %d: %v", m.ID, err)
					continue
				}
				pose.DrawAxes(&show, params, p, *markerSize)
				pose.DrawPoseInfo(&show, m, p)

				if printDetailed {
					roll, pitch, yaw := p.EulerDegrees()
					fmt.Printf("\n--- Marker %d ---\n", m.ID)
					fmt.Printf("Position (m): X=%.4f Y=%.4f Z=%.4f\n", p.TVec.X, p.TVec.Y, p.TVec.Z)
					fmt.Printf("Distance (m): %.4f\n", p.Distance())
					fmt.Printf("Rotation (deg): roll=%.2f pitch=%.2f yaw=%.2f\n", roll, pitch, yaw)
					fmt.Printf("Rotation vec: %+v\n", p.RVec)
				}
			}
			printDetailed = false
		}
		pose.DrawAxisLegend(&show)

		key := display.Show(show, 1)
		show.Close()

		switch {
		case video.IsQuit(key):
			return
		case key == video.KeyP:
			printDetailed = true
		}
	}
}
