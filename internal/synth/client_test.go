package synth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const (
	testWord      = "hello"
	testAudioBody = "ID3-mp3-bytes"
)

// fastRetries shrinks the retry policy so failure paths finish quickly.
func fastRetries(client *Client) {
	client.retryInterval = time.Millisecond
	client.maxRetries = 2
}

func TestSynthesize_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != apiTranslateTTS {
				t.Errorf("expected %s path, got %s", apiTranslateTTS, r.URL.Path)
			}

			query := r.URL.Query()
			if query.Get(paramText) != testWord {
				t.Errorf("expected q=%s, got %s", testWord, query.Get(paramText))
			}

			if query.Get(paramLanguage) != "en" {
				t.Errorf("expected tl=en, got %s", query.Get(paramLanguage))
			}

			if query.Get(paramEncoding) != encodingUTF8 {
				t.Errorf("expected ie=%s, got %s", encodingUTF8, query.Get(paramEncoding))
			}

			if query.Get(paramClient) != clientIdentity {
				t.Errorf("expected client=%s, got %s", clientIdentity, query.Get(paramClient))
			}

			_, _ = w.Write([]byte(testAudioBody))
		}),
	)
	defer server.Close()

	client := NewWithBaseURL(server.URL, "en", 10*time.Second)

	audio, err := client.Synthesize(context.Background(), testWord)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if string(audio) != testAudioBody {
		t.Errorf("expected audio %q, got %q", testAudioBody, string(audio))
	}
}

func TestSynthesize_EmptyText(t *testing.T) {
	t.Parallel()

	client := NewWithBaseURL("http://localhost:0", "en", time.Second)

	_, err := client.Synthesize(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty text")
	}

	if err != ErrTextEmpty {
		t.Errorf("expected ErrTextEmpty, got: %v", err)
	}
}

func TestSynthesize_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			_, _ = w.Write([]byte(testAudioBody))
		}),
	)
	defer server.Close()

	client := NewWithBaseURL(server.URL, "en", 10*time.Second)
	fastRetries(client)

	audio, err := client.Synthesize(context.Background(), testWord)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if string(audio) != testAudioBody {
		t.Errorf("expected audio after retry, got %q", string(audio))
	}

	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestSynthesize_RetriesTooManyRequests(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)

				return
			}

			_, _ = w.Write([]byte(testAudioBody))
		}),
	)
	defer server.Close()

	client := NewWithBaseURL(server.URL, "en", 10*time.Second)
	fastRetries(client)

	_, err := client.Synthesize(context.Background(), testWord)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if calls.Load() != 2 {
		t.Errorf("expected the throttled call to be retried once, got %d calls", calls.Load())
	}
}

func TestSynthesize_ClientErrorDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}),
	)
	defer server.Close()

	client := NewWithBaseURL(server.URL, "en", 10*time.Second)
	fastRetries(client)

	_, err := client.Synthesize(context.Background(), testWord)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 call for a permanent failure, got %d", calls.Load())
	}
}

func TestSynthesize_EmptyAudioIsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)
	defer server.Close()

	client := NewWithBaseURL(server.URL, "en", 10*time.Second)
	fastRetries(client)

	_, err := client.Synthesize(context.Background(), testWord)
	if err == nil {
		t.Fatal("expected error for empty audio body")
	}
}

func TestNew_ValidatesLanguageAndAccent(t *testing.T) {
	t.Parallel()

	_, err := New("xx", "com", time.Second)
	if err == nil {
		t.Error("expected error for unknown language")
	}

	_, err = New("en", "bogus", time.Second)
	if err == nil {
		t.Error("expected error for unknown accent")
	}

	client, err := New("en", "co.uk", time.Second)
	if err != nil {
		t.Fatalf("New failed for valid input: %v", err)
	}

	if client.baseURL != "https://translate.google.co.uk" {
		t.Errorf("unexpected base URL: %s", client.baseURL)
	}
}
