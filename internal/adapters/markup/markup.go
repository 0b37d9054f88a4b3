// Package markup reads the inline markup allowed in line content and in
// prompt prefixes: plain text and span elements carrying a class. Any other
// element is dropped and only its text is kept.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/termdemo/internal/domain"
	"golang.org/x/net/html"
)

const spanTag = "span"

// Parse splits markup into segments in document order. Adjacent text with
// the same style is merged. Nested spans take the innermost class.
func Parse(markup string) ([]domain.Segment, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))

	var (
		segments []domain.Segment
		styles   []string
	)
	current := func() string {
		if len(styles) == 0 {
			return ""
		}
		return styles[len(styles)-1]
	}

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenize markup: %w", err)
			}
			return segments, nil
		case html.TextToken:
			segments = appendText(segments, current(), string(tokenizer.Text()))
		case html.StartTagToken:
			name, hasAttr := tokenizer.TagName()
			if string(name) != spanTag {
				continue
			}
			style := current()
			for hasAttr {
				var key, value []byte
				key, value, hasAttr = tokenizer.TagAttr()
				if k := string(key); k == "class" || k == "part" {
					style = strings.TrimSpace(string(value))
				}
			}
			styles = append(styles, style)
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == spanTag && len(styles) > 0 {
				styles = styles[:len(styles)-1]
			}
		case html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "br" {
				segments = appendText(segments, current(), " ")
			}
		}
	}
}

// PlainText drops the styling of markup.
func PlainText(markup string) string {
	segments, err := Parse(markup)
	if err != nil {
		return markup
	}

	var b strings.Builder
	for _, segment := range segments {
		b.WriteString(segment.Text)
	}
	return b.String()
}

func appendText(segments []domain.Segment, style, text string) []domain.Segment {
	if text == "" {
		return segments
	}
	if n := len(segments); n > 0 && segments[n-1].Style == style {
		segments[n-1].Text += text
		return segments
	}
	return append(segments, domain.Segment{Style: style, Text: text})
}
