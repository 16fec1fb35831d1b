// Package video wraps camera devices, video files and display windows in
// explicitly scoped handles: open at loop start, Close on every exit path.
package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Stream is a frame source: a live camera or a video file. Live streams
// are unbounded; file streams end when the file does.
type Stream struct {
	cap  *gocv.VideoCapture
	desc string
}

// OpenDevice opens a camera by index.
func OpenDevice(index int) (*Stream, error) {
	cap, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", index, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("camera %d did not open; check the connection", index)
	}
	return &Stream{cap: cap, desc: fmt.Sprintf("camera %d", index)}, nil
}

// OpenFile opens a video file by path.
func OpenFile(path string) (*Stream, error) {
	cap, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("video %s did not open", path)
	}
	return &Stream{cap: cap, desc: path}, nil
}

// Open opens a device when source parses as a small integer, otherwise a
// file path. This mirrors the CLI surface where -src accepts either.
func Open(source string) (*Stream, error) {
	var index int
	if _, err := fmt.Sscanf(source, "%d", &index); err == nil && fmt.Sprintf("%d", index) == source {
		return OpenDevice(index)
	}
	return OpenFile(source)
}

// Read grabs the next frame into dst. It returns false on end of stream
// or a failed grab; the caller's loop ends there, frames are never
// retried.
func (s *Stream) Read(dst *gocv.Mat) bool {
	if !s.cap.Read(dst) {
		return false
	}
	return !dst.Empty()
}

// Desc describes the source for log messages.
func (s *Stream) Desc() string {
	return s.desc
}

// Close releases the underlying device or file handle.
func (s *Stream) Close() error {
	return s.cap.Close()
}
