package video

import (
	"gocv.io/x/gocv"
)

// Keys the lab tools react to.
const (
	KeyNone  = -1
	KeyEsc   = 27
	KeySpace = 32
	KeyQ     = 'q'
	KeyP     = 'p'
)

// Display is an on-screen preview window.
type Display struct {
	win *gocv.Window
}

// NewDisplay opens a named window.
func NewDisplay(title string) *Display {
	return &Display{win: gocv.NewWindow(title)}
}

// Show renders a frame and waits up to delayMS for a keypress, returning
// the key code or KeyNone. The wait doubles as the display refresh.
func (d *Display) Show(frame gocv.Mat, delayMS int) int {
	d.win.IMShow(frame)
	return d.win.WaitKey(delayMS)
}

// Wait blocks until any key is pressed in the window and returns it.
func (d *Display) Wait() int {
	return d.win.WaitKey(0)
}

// Close destroys the window.
func (d *Display) Close() error {
	return d.win.Close()
}

// IsQuit reports whether a key code means "stop the loop".
func IsQuit(key int) bool {
	return key == KeyEsc || key == KeyQ
}
