package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

var (
	ErrNilClient   = errors.New("httpclient: nil client")
	ErrBreakerOpen = errors.New("httpclient: upstream temporarily disabled")
)

// Client envuelve *http.Client con helpers JSON para los adapters salientes
// (gateway de push). Opcionalmente pasa cada request por un circuit breaker.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	breaker *gobreaker.CircuitBreaker[[]byte]
}

// BreakerConfig: tras ConsecutiveFailures errores seguidos se abre por OpenFor.
type BreakerConfig struct {
	Name                string
	ConsecutiveFailures uint32
	OpenFor             time.Duration
}

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
	Breaker   *BreakerConfig
}

func New(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: opts.Transport,
		},
	}

	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		if _, err := url.ParseRequestURI(base); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		c.BaseURL = strings.TrimRight(base, "/")
	}

	if opts.Breaker != nil {
		c.breaker = newBreaker(*opts.Breaker)
	}
	return c, nil
}

func newBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker[[]byte] {
	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	openFor := cfg.OpenFor
	if openFor <= 0 {
		openFor = 30 * time.Second
	}
	name := cfg.Name
	if name == "" {
		name = "httpclient"
	}

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    name,
		Timeout: openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// 4xx es culpa del request, no del upstream: no abre el breaker.
		IsSuccessful: func(err error) bool {
			var he *HTTPError
			if errors.As(err, &he) {
				return he.StatusCode < 500
			}
			return err == nil
		},
	})
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// DoJSON envía in como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
// pathOrURL puede ser absoluto o relativo a BaseURL. Error si status no es 2xx.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return ErrNilClient
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
	}

	call := func() ([]byte, error) {
		return c.do(ctx, method, fullURL, headers, payload)
	}

	var raw []byte
	if c.breaker != nil {
		raw, err = c.breaker.Execute(call)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrBreakerOpen, err)
		}
	} else {
		raw, err = call()
	}
	if err != nil {
		return err
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, fullURL string, headers map[string]string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	return raw, nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	if c.BaseURL == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}
