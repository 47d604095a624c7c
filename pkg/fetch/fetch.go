package fetch

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds every page request.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent mimics a desktop browser; the scraped sites serve
// stripped-down markup or reject requests from unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// HTTPError reports a non-2xx response.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func NewHTTPError(statusCode int, url string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		URL:        url,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request to %s returned %d %s", e.URL, e.StatusCode, e.Status)
}

// Fetcher retrieves pages over plain GET with a fixed timeout and
// browser-like headers. It never retries and never caches.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Logger    *zap.Logger
}

func NewFetcher(timeout time.Duration, userAgent string, logger *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		Logger:    logger,
	}
}

// Page performs the GET and returns the response body. Callers treat any
// error as "this field is unavailable for the current ticker"; a failed page
// never stops the batch.
func (f *Fetcher) Page(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.Client.Do(req)
	if err != nil {
		f.Logger.Error("request failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := NewHTTPError(resp.StatusCode, url)
		f.Logger.Error("request failed", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, httpErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body from %s: %w", url, err)
	}
	return body, nil
}
