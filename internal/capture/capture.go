// Package capture collects chessboard calibration frames from a camera.
package capture

import (
	"fmt"
	"os"
	"path/filepath"

	"camlab/internal/pattern"

	"gocv.io/x/gocv"
)

// Options configures a capture session.
type Options struct {
	Dir          string // destination directory for saved frames
	Grid         pattern.GridSize
	MaxFrames    int  // stop after this many saved frames
	SaveOverlays bool // also write a corner-overlay sidecar per saved frame
}

// DefaultOptions returns the lab handout configuration.
func DefaultOptions() Options {
	return Options{
		Dir:       "calib_images",
		Grid:      pattern.DefaultGrid,
		MaxFrames: 10,
	}
}

// Session accumulates saved calibration frames. It owns nothing but the
// destination directory; the camera and window belong to the caller's
// loop.
type Session struct {
	opts  Options
	saved int
}

// NewSession creates the destination directory if needed.
func NewSession(opts Options) (*Session, error) {
	if opts.MaxFrames <= 0 {
		return nil, fmt.Errorf("max frames must be positive, got %d", opts.MaxFrames)
	}
	if !opts.Grid.Valid() {
		return nil, fmt.Errorf("invalid grid %v", opts.Grid)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", opts.Dir, err)
	}
	return &Session{opts: opts}, nil
}

// Saved returns the number of frames persisted so far.
func (s *Session) Saved() int {
	return s.saved
}

// Done reports whether the session has reached its frame quota.
func (s *Session) Done() bool {
	return s.saved >= s.opts.MaxFrames
}

// FramePath returns the collision-free path for the next frame.
// Sequential names sort in capture order, which LoadDir relies on only
// for stable reporting.
func (s *Session) FramePath() string {
	return filepath.Join(s.opts.Dir, fmt.Sprintf("img_%02d.jpg", s.saved))
}

// Save persists the raw frame (and, when configured, an overlay sidecar
// with the detected corners drawn). Only frames with a detection should
// reach here; the caller gates on Detection.Found.
func (s *Session) Save(frame gocv.Mat, det pattern.Detection) (string, error) {
	if !det.Found {
		return "", fmt.Errorf("refusing to save frame without a pattern detection")
	}
	if s.Done() {
		return "", fmt.Errorf("session already has %d frames", s.saved)
	}

	path := s.FramePath()
	if ok := gocv.IMWrite(path, frame); !ok {
		return "", fmt.Errorf("write %s failed", path)
	}

	if s.opts.SaveOverlays {
		overlay := frame.Clone()
		pattern.DrawCorners(&overlay, s.opts.Grid, det)
		overlayPath := filepath.Join(s.opts.Dir, fmt.Sprintf("img_%02d_corners.jpg", s.saved))
		ok := gocv.IMWrite(overlayPath, overlay)
		overlay.Close()
		if !ok {
			return "", fmt.Errorf("write %s failed", overlayPath)
		}
	}

	s.saved++
	return path, nil
}
