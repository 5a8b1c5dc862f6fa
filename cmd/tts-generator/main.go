// Command tts-generator turns word lists into per-word speech audio files
// using the translate text-to-speech endpoint, re-encoded to a target
// bitrate with ffmpeg.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/book-expert/logger"

	"github.com/JolonB/TTS-Generator/internal/config"
	"github.com/JolonB/TTS-Generator/internal/core"
	"github.com/JolonB/TTS-Generator/internal/encode"
	"github.com/JolonB/TTS-Generator/internal/ratelimit"
	"github.com/JolonB/TTS-Generator/internal/runner"
	"github.com/JolonB/TTS-Generator/internal/synth"
	"github.com/JolonB/TTS-Generator/internal/words"
)

const synthesisTimeout = 60 * time.Second

// Flag names.
const (
	flagWord         = "word"
	flagWordShort    = "w"
	flagFile         = "file"
	flagFileShort    = "f"
	flagURL          = "url"
	flagURLShort     = "u"
	flagOutput       = "output"
	flagFiletype     = "filetype"
	flagBitrate      = "bitrate"
	flagThreads      = "threads"
	flagMaxPerSecond = "max-per-second"
	flagLanguage     = "language"
	flagAccent       = "accent"
	flagOverwrite    = "overwrite"
	flagProgress     = "progress"
	flagConfig       = "config"
	flagVerbose      = "verbose"
)

// Flag descriptions.
const (
	flagWordDesc         = "Word to generate audio for (repeatable, case sensitive)"
	flagFileDesc         = "File to parse words from, one per line (repeatable)"
	flagURLDesc          = "URL to fetch words from, one per line (repeatable)"
	flagOutputDesc       = "Directory to write the audio files to"
	flagFiletypeDesc     = "Audio filetype, in any format supported by ffmpeg"
	flagBitrateDesc      = "Exported bitrate, in any format supported by ffmpeg"
	flagThreadsDesc      = "Number of concurrent workers"
	flagMaxPerSecondDesc = "Maximum synthesis requests per second"
	flagLanguageDesc     = "Language code to generate audio in"
	flagAccentDesc       = "Accent top-level domain (e.g. com, co.uk, com.au)"
	flagOverwriteDesc    = "Regenerate and overwrite existing output files"
	flagProgressDesc     = "Show a progress bar while running"
	flagConfigDesc       = "Path to an optional TOML config file"
	flagVerboseDesc      = "Enable verbose logging"
)

// Log file names.
const (
	logFileNameDefault = "tts-generator.log"
	logFileNameVerbose = "tts-generator-verbose.log"
)

// Static errors.
var (
	errNoWordSource = errors.New("no word source supplied: use -w, -f, or -u")
	errNoWords      = errors.New("no words to process")
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)

	return nil
}

// appFlags holds the parsed command-line flag values.
type appFlags struct {
	words        stringList
	files        stringList
	urls         stringList
	output       string
	filetype     string
	bitrate      string
	threads      int
	maxPerSecond float64
	language     string
	accent       string
	overwrite    bool
	progress     bool
	config       string
	verbose      bool
}

func main() {
	err := run()
	if err != nil {
		// The logger may not be initialized yet, so use the standard
		// log package.
		log.Fatalf("Error: %v", err)
	}
}

// run is the main application entry point, returning an error on failure.
// Configuration errors fail the run; per-word failures are reported in the
// summary and do not affect the exit status.
func run() error {
	flags := parseFlags()

	cfg, err := buildConfig(flags)
	if err != nil {
		return err
	}

	appLogger, err := setupLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer appLogger.Close()

	collector, err := collectWords(flags, appLogger)
	if err != nil {
		return err
	}

	return generate(cfg, collector.Words(), appLogger)
}

// parseFlags defines and parses command-line flags, returning them in a
// struct. Source flags accept both short and long forms.
func parseFlags() appFlags {
	defaults := config.Default()

	var flags appFlags

	flag.Var(&flags.words, flagWord, flagWordDesc)
	flag.Var(&flags.words, flagWordShort, flagWordDesc)
	flag.Var(&flags.files, flagFile, flagFileDesc)
	flag.Var(&flags.files, flagFileShort, flagFileDesc)
	flag.Var(&flags.urls, flagURL, flagURLDesc)
	flag.Var(&flags.urls, flagURLShort, flagURLDesc)
	flag.StringVar(&flags.output, flagOutput, defaults.OutputDir, flagOutputDesc)
	flag.StringVar(&flags.filetype, flagFiletype, defaults.Filetype, flagFiletypeDesc)
	flag.StringVar(&flags.bitrate, flagBitrate, defaults.Bitrate, flagBitrateDesc)
	flag.IntVar(&flags.threads, flagThreads, defaults.Workers, flagThreadsDesc)
	flag.Float64Var(&flags.maxPerSecond, flagMaxPerSecond, defaults.MaxPerSecond, flagMaxPerSecondDesc)
	flag.StringVar(&flags.language, flagLanguage, defaults.Language, languageUsage())
	flag.StringVar(&flags.accent, flagAccent, defaults.Accent, flagAccentDesc)
	flag.BoolVar(&flags.overwrite, flagOverwrite, false, flagOverwriteDesc)
	flag.BoolVar(&flags.progress, flagProgress, false, flagProgressDesc)
	flag.StringVar(&flags.config, flagConfig, "", flagConfigDesc)
	flag.BoolVar(&flags.verbose, flagVerbose, false, flagVerboseDesc)
	flag.Parse()

	return flags
}

// languageUsage appends the supported codes to the language flag help, so
// the usage output doubles as the allow-list.
func languageUsage() string {
	return flagLanguageDesc + ". Options: " + strings.Join(synth.Languages(), ", ")
}

// buildConfig layers defaults, the optional config file, and explicitly set
// flags, then validates the result.
func buildConfig(flags appFlags) (config.Config, error) {
	cfg := config.Default()

	if flags.config != "" {
		err := config.LoadFile(flags.config, &cfg)
		if err != nil {
			return config.Config{}, err
		}
	}

	applyFlagOverrides(&cfg, flags)

	err := cfg.Validate()
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyFlagOverrides copies values of flags the user explicitly set onto
// cfg, so flags always win over the config file.
func applyFlagOverrides(cfg *config.Config, flags appFlags) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case flagOutput:
			cfg.OutputDir = flags.output
		case flagFiletype:
			cfg.Filetype = flags.filetype
		case flagBitrate:
			cfg.Bitrate = flags.bitrate
		case flagThreads:
			cfg.Workers = flags.threads
		case flagMaxPerSecond:
			cfg.MaxPerSecond = flags.maxPerSecond
		case flagLanguage:
			cfg.Language = flags.language
		case flagAccent:
			cfg.Accent = flags.accent
		case flagOverwrite:
			cfg.Overwrite = flags.overwrite
		case flagProgress:
			cfg.Progress = flags.progress
		}
	})
}

func setupLogger(verbose bool) (*logger.Logger, error) {
	logFileName := logFileNameDefault
	if verbose {
		logFileName = logFileNameVerbose
	}

	appLogger, err := logger.New(os.TempDir(), logFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return appLogger, nil
}

// collectWords gathers words from every supplied source. A failing source
// is reported and skipped; only an empty final set aborts the run.
func collectWords(flags appFlags, appLogger *logger.Logger) (*words.Collector, error) {
	if len(flags.words) == 0 && len(flags.files) == 0 && len(flags.urls) == 0 {
		flag.Usage()

		return nil, errNoWordSource
	}

	collector := words.NewCollector()
	ctx := context.Background()

	for _, path := range flags.files {
		err := collector.AddFromFile(path)
		if err != nil {
			appLogger.Warn("Skipping file source: %v", err)
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	for _, listURL := range flags.urls {
		err := collector.AddFromURL(ctx, listURL)
		if err != nil {
			appLogger.Warn("Skipping URL source: %v", err)
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	collector.Add(flags.words...)

	if collector.Len() == 0 {
		return nil, errNoWords
	}

	return collector, nil
}

// generate wires the pipeline together and prints the final summary.
func generate(cfg config.Config, wordList []string, appLogger *logger.Logger) error {
	client, err := synth.New(cfg.Language, cfg.Accent, synthesisTimeout)
	if err != nil {
		return fmt.Errorf("failed to create speech client: %w", err)
	}

	encoder, err := encode.New(cfg.Bitrate, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}

	limiter, err := ratelimit.New(cfg.MaxPerSecond)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	generationRunner := runner.New(client, encoder, limiter, cfg, appLogger)

	results, err := generationRunner.Run(context.Background(), wordList)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	summary := core.Summarize(results)
	fmt.Print(summary.Format())

	return nil
}
