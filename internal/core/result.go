package core

import (
	"fmt"
	"strings"
)

// Outcome classifies what happened to a single word.
type Outcome int

const (
	// OutcomeGenerated means the audio file was synthesized and written.
	OutcomeGenerated Outcome = iota
	// OutcomeSkipped means the output file already existed and overwrite
	// was not requested, so no synthesis call was made.
	OutcomeSkipped
	// OutcomeFailed means synthesis or encoding failed for this word.
	OutcomeFailed
)

// String returns the lower-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeGenerated:
		return "generated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the outcome for one word. Err is set only for
// OutcomeFailed.
type Result struct {
	Word    string
	Outcome Outcome
	Path    string
	Err     error
}

// FailedWord pairs a word with the reason its generation failed.
type FailedWord struct {
	Word   string
	Reason string
}

// Summary aggregates per-word results for the final report.
type Summary struct {
	Generated []string
	Skipped   []string
	Failed    []FailedWord
}

// Summarize folds a slice of results into a Summary.
func Summarize(results []Result) Summary {
	var summary Summary

	for _, result := range results {
		switch result.Outcome {
		case OutcomeGenerated:
			summary.Generated = append(summary.Generated, result.Word)
		case OutcomeSkipped:
			summary.Skipped = append(summary.Skipped, result.Word)
		case OutcomeFailed:
			reason := ""
			if result.Err != nil {
				reason = result.Err.Error()
			}

			summary.Failed = append(summary.Failed, FailedWord{
				Word:   result.Word,
				Reason: reason,
			})
		}
	}

	return summary
}

// Format renders the summary as a human-readable report. Failed words are
// named individually so a later run can retry just those.
func (s Summary) Format() string {
	var builder strings.Builder

	fmt.Fprintf(
		&builder,
		"Generated: %d, skipped: %d, failed: %d\n",
		len(s.Generated),
		len(s.Skipped),
		len(s.Failed),
	)

	for _, failure := range s.Failed {
		fmt.Fprintf(&builder, "  failed %q: %s\n", failure.Word, failure.Reason)
	}

	return builder.String()
}
