// Package clicker provides the synthetic mouse input sink for the detection pipeline.
package clicker

import "github.com/go-vgo/robotgo"

// Sink consumes click coordinates produced by the detection pipeline.
type Sink interface {
	// Click moves the pointer to the screen-absolute position and clicks.
	Click(x, y int) error
}

// mouseSink drives the real mouse through robotgo.
type mouseSink struct{}

// NewMouseSink creates a Sink that performs real mouse clicks.
func NewMouseSink() Sink {
	return &mouseSink{}
}

// Click moves instantly to (x, y) and performs a left click.
func (s *mouseSink) Click(x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click()
	return nil
}
