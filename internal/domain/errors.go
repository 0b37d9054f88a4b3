package domain

import "errors"

var (
	ErrLineOutsideWindow    = errors.New("line declared outside a window")
	ErrMultipleImages       = errors.New("window declares more than one image")
	ErrImageIndexOutOfRange = errors.New("image index out of range")
	ErrScriptNotFound       = errors.New("script not found")
	ErrScriptExists         = errors.New("script already exists")
)
