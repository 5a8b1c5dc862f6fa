// Package synth provides the HTTP client for the translate text-to-speech
// endpoint, returning MP3 audio for a single word or phrase per request.
package synth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Endpoint path and query parameters.
const (
	apiTranslateTTS = "/translate_tts"

	paramEncoding = "ie"
	paramClient   = "client"
	paramText     = "q"
	paramLanguage = "tl"

	encodingUTF8   = "UTF-8"
	clientIdentity = "tw-ob"
)

// Host construction.
const (
	hostScheme = "https://"
	hostPrefix = "translate.google."
)

// Retry policy. Mirrors the original generator's doubling 5-second retry,
// bounded so a permanently blocked client gives up.
const (
	defaultInitialRetryInterval = 5 * time.Second
	defaultMaxRetries           = 5
)

// Static errors.
var (
	ErrTextEmpty           = errors.New("text cannot be empty")
	ErrUnsupportedLanguage = errors.New("unsupported language code")
	ErrUnsupportedAccent   = errors.New("unsupported accent")
	ErrEmptyAudio          = errors.New("received empty audio data")
)

// Error formats.
const (
	errFmtServiceStatus = "speech service returned status %s"
	errFmtBuildRequest  = "failed to create speech request: %w"
	errFmtSendRequest   = "failed to send request to speech service at %s: %w"
	errFmtReadAudio     = "failed to read audio data: %w"
	errFmtSynthesize    = "synthesis failed for %q: %w"
)

// Client calls the translate text-to-speech endpoint. The accent top-level
// domain picks the host, which localizes pronunciation for languages spoken
// in several regions.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	language      string
	retryInterval time.Duration
	maxRetries    uint64
}

// New creates a speech client for the given language code and accent TLD.
// Both are validated against the supported tables.
func New(language, accent string, timeout time.Duration) (*Client, error) {
	if !IsSupportedLanguage(language) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	if !IsSupportedAccent(accent) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAccent, accent)
	}

	return NewWithBaseURL(hostScheme+hostPrefix+accent, language, timeout), nil
}

// NewWithBaseURL creates a speech client against an explicit base URL. It
// skips accent validation and exists primarily so tests can point the client
// at a local server.
func NewWithBaseURL(baseURL, language string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:       baseURL,
		language:      language,
		retryInterval: defaultInitialRetryInterval,
		maxRetries:    defaultMaxRetries,
	}
}

// Synthesize requests speech audio for text and returns the MP3 bytes.
// Transient failures (transport errors, 429, 5xx) are retried with
// exponential backoff; other HTTP errors fail immediately.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrTextEmpty
	}

	requestURL := c.buildRequestURL(text)

	var audioData []byte

	operation := func() error {
		data, err := c.fetchAudio(ctx, requestURL)
		if err != nil {
			return err
		}

		audioData = data

		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.retryInterval

	policy := backoff.WithContext(
		backoff.WithMaxRetries(expo, c.maxRetries),
		ctx,
	)

	err := backoff.Retry(operation, policy)
	if err != nil {
		return nil, fmt.Errorf(errFmtSynthesize, text, err)
	}

	return audioData, nil
}

// buildRequestURL assembles the query string for one synthesis call.
func (c *Client) buildRequestURL(text string) string {
	query := url.Values{}
	query.Set(paramEncoding, encodingUTF8)
	query.Set(paramClient, clientIdentity)
	query.Set(paramText, text)
	query.Set(paramLanguage, c.language)

	return c.baseURL + apiTranslateTTS + "?" + query.Encode()
}

// fetchAudio performs one HTTP round trip. Errors that retrying cannot fix
// are wrapped as permanent so the backoff loop stops early.
func (c *Client) fetchAudio(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf(errFmtBuildRequest, err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errFmtSendRequest, c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf(errFmtServiceStatus, resp.Status)
		if isRetryableStatus(resp.StatusCode) {
			return nil, statusErr
		}

		return nil, backoff.Permanent(statusErr)
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(errFmtReadAudio, err)
	}

	if len(audioData) == 0 {
		return nil, backoff.Permanent(ErrEmptyAudio)
	}

	return audioData, nil
}

// isRetryableStatus reports whether the status code indicates a transient
// condition. 429 covers the service throttling excessive requests.
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}
