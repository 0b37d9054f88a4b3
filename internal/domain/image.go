package domain

import "time"

const (
	DefaultImageDelay = 0 * time.Millisecond
)

type Image struct {
	Source string
	Alt    string
	// Index is the line position the image is revealed before. An index
	// equal to the number of lines reveals it after the last line.
	Index      int
	Attributes Attributes
}

type EffectiveImageConfig struct {
	Delay time.Duration
	Time  ImageTime
}

// ResolveImage applies image → window → default precedence to the image
// timing fields. Without any declaration the image stays maximized.
func ResolveImage(image Image, window WindowConfig) EffectiveImageConfig {
	cfg := EffectiveImageConfig{
		Delay: DefaultImageDelay,
		Time:  ImageTime{Infinite: true},
	}

	if delay := firstDuration(image.Attributes.ImageDelay, window.Attributes.ImageDelay); delay != nil {
		cfg.Delay = *delay
	}

	switch {
	case image.Attributes.ImageTime != nil:
		cfg.Time = *image.Attributes.ImageTime
	case window.Attributes.ImageTime != nil:
		cfg.Time = *window.Attributes.ImageTime
	}

	return cfg
}
