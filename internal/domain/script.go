package domain

import "fmt"

type Script struct {
	Name   string
	Window *WindowConfig
	Lines  []Line
	Image  *Image
}

func (s Script) Validate() error {
	if s.Window == nil && (len(s.Lines) > 0 || s.Image != nil) {
		return ErrLineOutsideWindow
	}

	if s.Image != nil && (s.Image.Index < 0 || s.Image.Index > len(s.Lines)) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrImageIndexOutOfRange, s.Image.Index, len(s.Lines))
	}

	return nil
}

func (s Script) WindowOrDefault() WindowConfig {
	if s.Window == nil {
		return WindowConfig{}
	}

	return *s.Window
}
