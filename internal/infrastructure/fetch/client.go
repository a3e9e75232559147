package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
)

// maxAttempts bounds the retry loop for transient failures
const maxAttempts = 3

// Config holds configuration for the document fetcher
type Config struct {
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// Client retrieves vendor pages and product feeds. Vendor sites throttle
// aggressively, so every request goes through a shared rate limiter.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a document fetcher
func NewClient(config Config) *Client {
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 5
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = "RegimenPro-Scrape/1.0"
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// SetDebug toggles request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Fetch retrieves one document, retrying transient failures with exponential
// backoff. 404 is terminal: the product page is gone, not flaky.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*domain.RawDocument, error) {
	if c.debug {
		log.Printf("[FETCH] GET %s", rawURL)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, rawURL)
		if err != nil {
			if c.debug {
				log.Printf("[FETCH] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			if !sleepBackoff(ctx, attempt) {
				return nil, ctx.Err()
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, rawURL)
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[FETCH] status %d (attempt %d) for %s", resp.StatusCode, attempt, rawURL)
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
			if !sleepBackoff(ctx, attempt) {
				return nil, ctx.Err()
			}
			continue
		}
		if readErr != nil {
			return nil, fmt.Errorf("%w: reading body: %v", domain.ErrFetchFailed, readErr)
		}

		return &domain.RawDocument{
			URL:         rawURL,
			ContentType: detectContentType(resp.Header.Get("Content-Type"), rawURL),
			Body:        body,
		}, nil
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET with the client's headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return resp, nil
}

// sleepBackoff waits out the backoff for the given attempt, false if the
// context ended first
func sleepBackoff(ctx context.Context, attempt int) bool {
	select {
	case <-time.After(exponentialBackoff(attempt)):
		return true
	case <-ctx.Done():
		return false
	}
}

// exponentialBackoff returns 500ms doubled per attempt (500ms, 1s, 2s, ...)
func exponentialBackoff(attempt int) time.Duration {
	return 500 * time.Millisecond << (attempt - 1)
}

// detectContentType classifies the response for the extractor, trusting the
// header first and the URL suffix as fallback
func detectContentType(header, rawURL string) domain.ContentType {
	if strings.Contains(header, "json") {
		return domain.ContentTypeJSON
	}
	if header == "" && strings.HasSuffix(rawURL, ".json") {
		return domain.ContentTypeJSON
	}
	return domain.ContentTypeHTML
}

// FeedURL rewrites a product page URL to its Shopify JSON feed endpoint:
// query and fragment dropped, ".json" appended to the path
func FeedURL(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid product URL %q: %w", pageURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid product URL %q: missing scheme or host", pageURL)
	}

	path := strings.TrimSuffix(u.Path, "/")
	if !strings.HasSuffix(path, ".json") {
		path += ".json"
	}
	return u.Scheme + "://" + u.Host + path, nil
}
