// Package core defines the interfaces and per-word result types shared by
// the generation pipeline.
package core

import "context"

// Synthesizer converts a single word or phrase into raw audio bytes by
// calling an external speech service.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Encoder transcodes raw synthesized audio to the configured bitrate and
// writes the final file to outputPath.
type Encoder interface {
	Encode(ctx context.Context, audio []byte, outputPath string) error
}
