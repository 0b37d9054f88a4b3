package application

import (
	"time"

	"github.com/bnema/termdemo/internal/domain"
)

// SampleScript is the script written by `termdemo new`.
func SampleScript() domain.Script {
	lineDelay := 1000 * time.Millisecond
	directory := "~/termdemo"
	percent := 100

	return domain.Script{
		Window: &domain.WindowConfig{
			Mode: domain.ModeDark,
			Attributes: domain.Attributes{
				LineDelay: &lineDelay,
				Directory: &directory,
			},
		},
		Lines: []domain.Line{
			{Kind: domain.LineKindInput, Segments: []domain.Segment{{Text: "go install "}, {Style: "accent", Text: "github.com/bnema/termdemo/cmd/termdemo@latest"}}},
			{Kind: domain.LineKindProgress, Attributes: domain.Attributes{ProgressPercent: &percent}},
			{Segments: []domain.Segment{{Style: "success", Text: "installed"}}},
			{Kind: domain.LineKindPrompt, Segments: []domain.Segment{{Text: "termdemo play demo"}}},
			{Segments: []domain.Segment{{Text: "press "}, {Style: "accent", Text: "f"}, {Text: " to fast-forward, "}, {Style: "accent", Text: "r"}, {Text: " to restart"}}},
		},
	}
}
