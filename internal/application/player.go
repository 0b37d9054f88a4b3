package application

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/bnema/termdemo/internal/domain"
	"github.com/bnema/termdemo/internal/ports"
)

type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeAbandoned
)

func (o Outcome) String() string {
	if o == OutcomeAbandoned {
		return "abandoned"
	}
	return "completed"
}

const progressFill = 0.8

type LinePlayer struct {
	surface ports.Surface
	clock   ports.Clock
	bus     *Bus
}

func NewLinePlayer(surface ports.Surface, clock ports.Clock, bus *Bus) *LinePlayer {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if bus == nil {
		bus = NewBus()
	}

	return &LinePlayer{surface: surface, clock: clock, bus: bus}
}

// Play animates line index to completion. Calls for the same line must not
// overlap. A reset (or a cancelled ctx) hides the line and returns
// OutcomeAbandoned without finishing it.
func (p *LinePlayer) Play(ctx context.Context, index int, line domain.Line, cfg domain.EffectiveLineConfig, tokens Tokens, session string) Outcome {
	p.surface.SetTyping(index, true)
	p.bus.Publish(Event{Type: EventLineStarted, Session: session, Line: index})

	var outcome Outcome
	switch cfg.Kind {
	case domain.LineKindInput, domain.LineKindPrompt:
		outcome = p.playTyped(ctx, index, line, cfg, tokens)
	case domain.LineKindProgress:
		outcome = p.playProgress(ctx, index, cfg, tokens)
	default:
		outcome = p.playOutput(ctx, index, cfg, tokens)
	}

	if outcome == OutcomeAbandoned {
		p.hide(index)
	}

	p.surface.SetTyping(index, false)
	p.bus.Publish(Event{Type: EventLineFinished, Session: session, Line: index, Outcome: outcome})

	return outcome
}

func (p *LinePlayer) playOutput(ctx context.Context, index int, cfg domain.EffectiveLineConfig, tokens Tokens) Outcome {
	if tokens.Sleep(ctx, p.clock, cfg.LineDelay) == WaitReset {
		return OutcomeAbandoned
	}

	p.surface.SetLineVisible(index, true)
	return OutcomeCompleted
}

func (p *LinePlayer) playTyped(ctx context.Context, index int, line domain.Line, cfg domain.EffectiveLineConfig, tokens Tokens) Outcome {
	p.surface.SetPrefixVisible(index, true)
	for s := range line.Segments {
		p.surface.SetSegmentText(index, s, "")
	}
	p.surface.SetLineVisible(index, true)
	p.surface.SetCursor(index, true)

	if tokens.Sleep(ctx, p.clock, cfg.LineDelay) == WaitReset {
		return OutcomeAbandoned
	}

	for s, segment := range line.Segments {
		for _, unit := range segment.Units() {
			if tokens.Sleep(ctx, p.clock, cfg.TypingDelay) == WaitReset {
				return OutcomeAbandoned
			}
			p.surface.AppendSegmentText(index, s, unit)
		}
	}

	p.surface.SetCursor(index, false)
	return OutcomeCompleted
}

func (p *LinePlayer) playProgress(ctx context.Context, index int, cfg domain.EffectiveLineConfig, tokens Tokens) Outcome {
	if tokens.Sleep(ctx, p.clock, cfg.LineDelay) == WaitReset {
		return OutcomeAbandoned
	}

	steps := ProgressSteps(p.surface.LineWidth(index), p.surface.TextWidth(cfg.ProgressChar), cfg.ProgressPercent)

	p.surface.SetLineText(index, "0%")
	p.surface.SetLineVisible(index, true)

	for i := 1; i <= steps; i++ {
		if tokens.Sleep(ctx, p.clock, cfg.TypingDelay) == WaitReset {
			return OutcomeAbandoned
		}
		p.surface.SetLineText(index, ProgressText(cfg.ProgressChar, cfg.ProgressPercent, i, steps))
	}

	return OutcomeCompleted
}

func (p *LinePlayer) hide(index int) {
	p.surface.SetCursor(index, false)
	p.surface.SetLineVisible(index, false)
	p.surface.SetPrefixVisible(index, false)
}

// ProgressSteps is the number of fill characters a progress line reaches at
// percent, given the line width and the width of one fill character.
func ProgressSteps(lineWidth, charWidth, percent int) int {
	if charWidth <= 0 || lineWidth <= 0 || percent <= 0 {
		return 0
	}

	steps := int(math.Round(float64(lineWidth) * progressFill * float64(percent) / 100 / float64(charWidth)))
	if steps < 0 {
		return 0
	}
	return steps
}

func ProgressText(char string, percent, i, steps int) string {
	reached := 0
	if steps > 0 {
		reached = int(math.Round(float64(percent) / float64(steps) * float64(i)))
	}

	return fmt.Sprintf("%s %d%%", strings.Repeat(char, i), reached)
}
