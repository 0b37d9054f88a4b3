package ports

type Control string

const (
	ControlFast    Control = "fast"
	ControlRestart Control = "restart"
)

// Surface is where a window is drawn. Line and segment indexes follow the
// script's document order. Implementations must be safe for use from the
// playback goroutine while another goroutine renders them.
type Surface interface {
	ConfigureLine(line int, prefixMarkup, cursorMarkup string)
	SetLineVisible(line int, visible bool)
	SetPrefixVisible(line int, visible bool)
	SetSegmentText(line, segment int, text string)
	AppendSegmentText(line, segment int, unit string)
	// SetLineText replaces the whole content of a line, as progress lines do.
	SetLineText(line int, text string)
	SetCursor(line int, on bool)
	SetTyping(line int, on bool)
	SetControlVisible(control Control, visible bool)
	SetImageMaximized(maximized bool)

	// LineWidth is the width in cells available to a line's content.
	LineWidth(line int) int
	TextWidth(text string) int
}

type Viewport interface {
	ScrollTop() int
	ScrollTo(top int)
	MaxScrollTop() int
	Height() int
	LineCount() int
	// LineBounds reports the first row and the height of a line within the
	// scrolled content.
	LineBounds(line int) (top, height int)
}
