package domain

import (
	"strings"

	"github.com/rivo/uniseg"
)

type Segment struct {
	Style string
	Text  string
}

func (s Segment) Units() []string {
	units := make([]string, 0, len(s.Text))
	graphemes := uniseg.NewGraphemes(s.Text)
	for graphemes.Next() {
		units = append(units, graphemes.Str())
	}

	return units
}

type Line struct {
	// Kind is empty when the line inherits the window's kind.
	Kind       LineKind
	Segments   []Segment
	Attributes Attributes
}

func (l Line) Text() string {
	var b strings.Builder
	for _, segment := range l.Segments {
		b.WriteString(segment.Text)
	}

	return b.String()
}
