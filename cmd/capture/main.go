// Command capture collects chessboard calibration frames from a camera.
// Frames are only saved when the pattern is detected and the user presses
// SPACE.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"camlab/internal/capture"
	"camlab/internal/pattern"
	"camlab/internal/version"
	"camlab/internal/video"

	"gocv.io/x/gocv"
)

func main() {
	camera := flag.Int("camera", 0, "Camera device index")
	dir := flag.String("dir", "calib_images", "Directory to save captured frames")
	gridSpec := flag.String("grid", pattern.DefaultGrid.String(), "Inner corner grid as COLSxROWS")
	count := flag.Int("n", 10, "Number of frames to capture")
	overlays := flag.Bool("overlays", false, "Also save corner-overlay copies")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	grid, err := pattern.ParseGrid(*gridSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	session, err := capture.NewSession(capture.Options{
		Dir:          *dir,
		Grid:         grid,
		MaxFrames:    *count,
		SaveOverlays: *overlays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("==================================================")
	fmt.Printf("CAMERA CALIBRATION - Image Capture (camlab v%s)\n", version.Version)
	fmt.Println("==================================================")
	fmt.Println("\nConfiguration:")
	fmt.Printf("  - Save directory: %s\n", *dir)
	fmt.Printf("  - Frames to capture: %d\n", *count)
	fmt.Printf("  - Chessboard size: %v inner corners\n", grid)
	fmt.Println("\nControls:")
	fmt.Println("  [SPACE] - Save frame (when the chessboard is detected)")
	fmt.Println("  [ESC]   - Quit")
	fmt.Println("\nTips:")
	fmt.Println("  - Hold the board steady when the corner overlay appears")
	fmt.Println("  - Vary angle and distance between captures")
	fmt.Println("==================================================")

	stream, err := video.OpenDevice(*camera)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer stream.Close()

	display := video.NewDisplay("Capture")
	defer display.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	for !session.Done() {
		if !stream.Read(&frame) {
			log.Printf("stream %s ended", stream.Desc())
			break
		}

		det := pattern.Detect(frame, grid)

		show := frame.Clone()
		if det.Found {
			pattern.DrawCorners(&show, grid, det)
		}
		key := display.Show(show, 1)
		show.Close()

		switch {
		case key == video.KeySpace && det.Found:
			path, err := session.Save(frame, det)
			if err != nil {
				log.Printf("save failed: %v", err)
				continue
			}
			fmt.Printf("Saved %s (%d/%d)\n", path, session.Saved(), *count)
		case video.IsQuit(key):
			fmt.Printf("\nExiting with %d/%d frames captured.\n", session.Saved(), *count)
			return
		}
	}

	if session.Done() {
		fmt.Printf("\nCaptured all %d frames.\n", *count)
	}
}
