// Package encode transcodes synthesized audio to the configured bitrate by
// calling the ffmpeg binary.
package encode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/book-expert/logger"
	"github.com/google/uuid"
)

const (
	defaultBinary   = "ffmpeg"
	tempFilePattern = "tts-raw-%s.mp3"
	filePermissions = 0o600
)

// ErrBitrateEmpty indicates the encoder was constructed without a bitrate.
var ErrBitrateEmpty = errors.New("bitrate cannot be empty")

// FFmpegEncoder implements core.Encoder by shelling out to ffmpeg. The
// synthesized bytes are staged in a uniquely named temp file so concurrent
// workers never collide.
type FFmpegEncoder struct {
	binary  string
	bitrate string
	log     *logger.Logger
}

// New creates an encoder targeting the given bitrate, in any form ffmpeg
// accepts (e.g. "16k", "32000").
func New(bitrate string, log *logger.Logger) (*FFmpegEncoder, error) {
	if bitrate == "" {
		return nil, ErrBitrateEmpty
	}

	return &FFmpegEncoder{
		binary:  defaultBinary,
		bitrate: bitrate,
		log:     log,
	}, nil
}

// NewWithBinary creates an encoder that invokes an alternative binary.
// Used by tests to substitute a stub for ffmpeg.
func NewWithBinary(binary, bitrate string, log *logger.Logger) (*FFmpegEncoder, error) {
	encoder, err := New(bitrate, log)
	if err != nil {
		return nil, err
	}

	encoder.binary = binary

	return encoder, nil
}

// Encode writes audio to a temp file, transcodes it to the target bitrate,
// and writes the result to outputPath.
func (e *FFmpegEncoder) Encode(ctx context.Context, audio []byte, outputPath string) error {
	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf(tempFilePattern, uuid.NewString()))

	err := os.WriteFile(tempPath, audio, filePermissions)
	if err != nil {
		return fmt.Errorf("failed to stage audio for encoding: %w", err)
	}

	defer func() {
		removeErr := os.Remove(tempPath)
		if removeErr != nil {
			e.log.Warn("Failed to remove temp file '%s': %v", tempPath, removeErr)
		}
	}()

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", tempPath,
		"-b:a", e.bitrate,
		outputPath,
	}

	// #nosec G204 -- the bitrate is validated at configuration time and the
	// paths are constructed by this program
	cmd := exec.CommandContext(ctx, e.binary, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s execution failed: %w - output: %s", e.binary, err, string(output))
	}

	return nil
}
