// Package words accumulates the target words for a generation run from
// literal arguments, local files, and remote URLs into one ordered,
// de-duplicated set.
package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultFetchTimeout = 30 * time.Second

// ErrFetchStatus indicates a word-list URL responded with a non-success
// status.
var ErrFetchStatus = errors.New("word list fetch returned non-OK status")

// Collector builds the word set for a run. Words are case-sensitive and
// kept exactly as supplied; duplicates are dropped at insertion and the
// first-seen order is preserved for deterministic progress output.
type Collector struct {
	ordered    []string
	seen       map[string]struct{}
	httpClient *http.Client
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		ordered: nil,
		seen:    make(map[string]struct{}),
		httpClient: &http.Client{
			Timeout: defaultFetchTimeout,
		},
	}
}

// Add inserts literal words. Empty strings and words already present are
// ignored.
func (c *Collector) Add(words ...string) {
	for _, word := range words {
		if word == "" {
			continue
		}

		if _, ok := c.seen[word]; ok {
			continue
		}

		c.seen[word] = struct{}{}
		c.ordered = append(c.ordered, word)
	}
}

// AddFromFile reads a plain-text word list, one word or phrase per line.
// Lines are taken verbatim apart from trimming line terminators.
func (c *Collector) AddFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open word list %q: %w", path, err)
	}
	defer file.Close()

	err = c.addFromReader(file)
	if err != nil {
		return fmt.Errorf("failed to read word list %q: %w", path, err)
	}

	return nil
}

// AddFromURL downloads a word list over HTTP(S) in the same line-based
// format as local files.
func (c *Collector) AddFromURL(ctx context.Context, listURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request for word list %q: %w", listURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch word list %q: %w", listURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s from %q", ErrFetchStatus, resp.Status, listURL)
	}

	err = c.addFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read word list %q: %w", listURL, err)
	}

	return nil
}

// Words returns a copy of the collected words in first-seen order.
func (c *Collector) Words() []string {
	words := make([]string, len(c.ordered))
	copy(words, c.ordered)

	return words
}

// Len returns the number of distinct words collected.
func (c *Collector) Len() int {
	return len(c.ordered)
}

func (c *Collector) addFromReader(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		c.Add(strings.TrimRight(scanner.Text(), "\r"))
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return nil
}
