//go:generate mockery --name Client --output ./mocks --outpkg mocks --case=underscore
package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/middleware"
)

// Client は外部辞書の検索です。見つからない場合は (nil, nil) を返します。
type Client interface {
	Lookup(ctx context.Context, word string) (*Entry, error)
}

type HTTPClient struct {
	baseURL     string
	userAgent   string
	maxRetries  int
	retryDelay  time.Duration
	maxExamples int
	httpClient  *http.Client
}

func NewHTTPClient(cfg config.DictionaryConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultDictionaryTimeout
	}
	maxExamples := cfg.MaxExamples
	if maxExamples <= 0 {
		maxExamples = config.DefaultDictionaryMaxExamples
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = config.DefaultDictionaryMaxRetries
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultDictionaryBaseURL
	}
	return &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   cfg.UserAgent,
		maxRetries:  maxRetries,
		retryDelay:  cfg.RetryDelay,
		maxExamples: maxExamples,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// errNotFound は辞書に単語がないことを示します (リトライしない)
var errNotFound = errors.New("dictionary: word not found")

func (c *HTTPClient) Lookup(ctx context.Context, word string) (*Entry, error) {
	logger := middleware.GetLogger(ctx).With(slog.String("component", "dictionary"))
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, nil
	}

	var entry *Entry
	err := retry(ctx, c.maxRetries, c.retryDelay, func(attempt int) error {
		e, err := c.fetch(ctx, word)
		if err != nil && !errors.Is(err, errNotFound) {
			logger.Warn("Dictionary lookup attempt failed", "word", word, "attempt", attempt, "error", err)
		}
		entry = e
		return err
	}, func(err error) bool { return !errors.Is(err, errNotFound) })

	if errors.Is(err, errNotFound) {
		logger.Debug("Word not found in dictionary", "word", word)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dictionary.Lookup %q: %w", word, err)
	}
	return entry, nil
}

func (c *HTTPClient) fetch(ctx context.Context, word string) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("dictionary api returned status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)

	// 見つからない場合、配列ではなく {"title": "No Definitions Found", ...} が返る
	if len(body) > 0 && body[0] == '{' {
		var nf notFoundPayload
		if err := json.Unmarshal(body, &nf); err != nil {
			return nil, fmt.Errorf("decode dictionary response: %w", err)
		}
		if nf.Title == noDefinitionsTitle {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("unexpected dictionary response: %s", nf.Title)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode dictionary response: %w", err)
	}
	if len(entries) == 0 {
		return nil, errNotFound
	}
	return entries[0].toEntry(c.maxExamples), nil
}
