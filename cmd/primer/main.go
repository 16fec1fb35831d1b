// Command primer bundles the OpenCV primer exercises: image inspection,
// basic processing, shape drawing, and video playback.
//
// Usage:
//
//	primer info  -in image.jpg [-x 100 -y 100]
//	primer process -in image.jpg [-out dir] [-show]
//	primer draw  -in image.jpg [-out drawn.jpg] [-show]
//	primer video -in video.mp4
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"camlab/internal/imgproc"
	"camlab/internal/video"

	"gocv.io/x/gocv"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: primer <info|process|draw|video> [flags]")
	os.Exit(1)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		usage()
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "process":
		err = runProcess(os.Args[2:])
	case "draw":
		err = runDraw(os.Args[2:])
	case "video":
		err = runVideo(os.Args[2:])
	default:
		usage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	in := fs.String("in", "image.jpg", "Input image")
	px := fs.Int("x", 100, "Probe pixel x")
	py := fs.Int("y", 100, "Probe pixel y")
	fs.Parse(args)

	img, err := imgproc.Load(*in)
	if err != nil {
		return err
	}
	defer img.Close()

	fmt.Printf("Image shape: %v\n", imgproc.Describe(img))
	bgr, err := imgproc.PixelBGR(img, *px, *py)
	if err != nil {
		return err
	}
	fmt.Printf("Pixel value at (%d, %d): B=%d G=%d R=%d\n", *px, *py, bgr[0], bgr[1], bgr[2])
	return nil
}

func runProcess(args []string) error {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	in := fs.String("in", "image.jpg", "Input image")
	out := fs.String("out", ".", "Output directory for artifacts")
	show := fs.Bool("show", false, "Show results in windows instead of only saving")
	fs.Parse(args)

	img, err := imgproc.Load(*in)
	if err != nil {
		return err
	}
	defer img.Close()

	gray := imgproc.Grayscale(img)
	defer gray.Close()
	thresh := imgproc.Threshold(gray, 127)
	defer thresh.Close()
	edges := imgproc.Edges(gray, 100, 200)
	defer edges.Close()

	base := filepath.Base(*in)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]

	for _, artifact := range []struct {
		suffix string
		mat    gocv.Mat
	}{
		{"gray", gray},
		{"thresh", thresh},
		{"edges", edges},
	} {
		path := filepath.Join(*out, fmt.Sprintf("%s_%s.png", stem, artifact.suffix))
		if err := imgproc.Save(path, artifact.mat); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	if *show {
		showUntilKey(map[string]gocv.Mat{"Threshold": thresh, "Edges": edges})
	}
	return nil
}

func runDraw(args []string) error {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	in := fs.String("in", "image.jpg", "Input image")
	out := fs.String("out", "drawn.jpg", "Output image")
	show := fs.Bool("show", false, "Show the result in a window")
	fs.Parse(args)

	img, err := imgproc.Load(*in)
	if err != nil {
		return err
	}
	defer img.Close()

	drawn := imgproc.DrawDemo(img)
	defer drawn.Close()

	if err := imgproc.Save(*out, drawn); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", *out)

	if *show {
		showUntilKey(map[string]gocv.Mat{"Drawn Image": drawn})
	}
	return nil
}

func runVideo(args []string) error {
	fs := flag.NewFlagSet("video", flag.ExitOnError)
	in := fs.String("in", "video.mp4", "Input video file")
	fs.Parse(args)

	stream, err := video.OpenFile(*in)
	if err != nil {
		return err
	}
	defer stream.Close()

	display := video.NewDisplay("Video")
	defer display.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	for stream.Read(&frame) {
		if video.IsQuit(display.Show(frame, 30)) {
			break
		}
	}
	return nil
}

// showUntilKey opens one window per mat and blocks until a key is
// pressed.
func showUntilKey(mats map[string]gocv.Mat) {
	var displays []*video.Display
	for title, m := range mats {
		d := video.NewDisplay(title)
		d.Show(m, 1)
		displays = append(displays, d)
	}
	if len(displays) > 0 {
		displays[len(displays)-1].Wait()
	}
	for _, d := range displays {
		d.Close()
	}
}
