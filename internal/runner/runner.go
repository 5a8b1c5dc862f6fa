// Package runner drives a bounded pool of workers over the word set,
// respecting the rate limiter and the overwrite policy, and collects one
// result per word.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/book-expert/logger"

	"github.com/JolonB/TTS-Generator/internal/config"
	"github.com/JolonB/TTS-Generator/internal/core"
	"github.com/JolonB/TTS-Generator/internal/ratelimit"
)

const dirPermissions = 0o750

// Log formats.
const (
	logFmtWordFailed    = "Failed to generate %q: %v"
	logFmtWordSkipped   = "Skipping %q: output already exists"
	logFmtWordGenerated = "Generated %q -> %s"
)

// Runner fans per-word synthesis out over a fixed-size worker pool. A
// failure for one word never aborts the others; every word produces exactly
// one Result.
type Runner struct {
	synthesizer core.Synthesizer
	encoder     core.Encoder
	limiter     *ratelimit.Limiter
	cfg         config.Config
	log         *logger.Logger
}

// New creates a runner. The limiter is shared by all workers and is the
// only mutable state they contend on.
func New(
	synthesizer core.Synthesizer,
	encoder core.Encoder,
	limiter *ratelimit.Limiter,
	cfg config.Config,
	log *logger.Logger,
) *Runner {
	return &Runner{
		synthesizer: synthesizer,
		encoder:     encoder,
		limiter:     limiter,
		cfg:         cfg,
		log:         log,
	}
}

// Run processes every word and returns one Result per word. The returned
// error covers run-level failures only (such as an uncreatable output
// directory); per-word synthesis and encode errors are carried inside the
// results.
func (r *Runner) Run(ctx context.Context, words []string) ([]core.Result, error) {
	err := os.MkdirAll(r.cfg.OutputDir, dirPermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", r.cfg.OutputDir, err)
	}

	progress := r.newProgress(len(words))
	defer progress.Finish()

	var (
		waitGroup sync.WaitGroup
		mutex     sync.Mutex
	)

	results := make([]core.Result, 0, len(words))

	// Buffered channel acts as the worker-slot semaphore bounding
	// concurrency to the configured pool size.
	workerPool := make(chan struct{}, r.cfg.Workers)

	for _, word := range words {
		waitGroup.Add(1)

		go func(word string) {
			defer waitGroup.Done()

			workerPool <- struct{}{}

			defer func() { <-workerPool }()

			result := r.processWord(ctx, word)

			mutex.Lock()
			results = append(results, result)
			mutex.Unlock()

			progress.Tick()
		}(word)
	}

	waitGroup.Wait()
	close(workerPool)

	return results, nil
}

// processWord handles one word end to end: skip check, rate-limited
// synthesis, then encoding.
func (r *Runner) processWord(ctx context.Context, word string) core.Result {
	outputPath := r.outputPath(word)

	if !r.cfg.Overwrite && fileExists(outputPath) {
		r.log.Info(logFmtWordSkipped, word)

		return core.Result{Word: word, Outcome: core.OutcomeSkipped, Path: outputPath, Err: nil}
	}

	err := r.generateWord(ctx, word, outputPath)
	if err != nil {
		r.log.Error(logFmtWordFailed, word, err)

		return core.Result{Word: word, Outcome: core.OutcomeFailed, Path: outputPath, Err: err}
	}

	r.log.Info(logFmtWordGenerated, word, outputPath)

	return core.Result{Word: word, Outcome: core.OutcomeGenerated, Path: outputPath, Err: nil}
}

func (r *Runner) generateWord(ctx context.Context, word, outputPath string) error {
	err := r.limiter.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	audio, err := r.synthesizer.Synthesize(ctx, word)
	if err != nil {
		return fmt.Errorf("synthesis: %w", err)
	}

	err = r.encoder.Encode(ctx, audio, outputPath)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	return nil
}

// outputPath computes the deterministic destination for a word. The word is
// used verbatim as the filename stem.
func (r *Runner) outputPath(word string) string {
	return filepath.Join(r.cfg.OutputDir, word+"."+r.cfg.Filetype)
}

func (r *Runner) newProgress(total int) progressReporter {
	if !r.cfg.Progress {
		return noopProgress{}
	}

	return newBarProgress(total)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
