// Package fetcher sends request documents to the search service over HTTP.
// It takes care of authentication, the TLS policy and optional proxying, and
// returns the raw response body.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the service endpoint used when none is configured.
const DefaultBaseURL = "https://yandex.ru/search/xml"

const (
	defaultTimeout   = 30 * time.Second
	defaultProxyPort = 80
	userAgent        = "xmlsearch-go/1.0 (+https://github.com/f4ah6o/xmlsearch-go)"
	contentTypeXML   = "application/xml"
)

// Proxy routes requests through an HTTP proxy.
type Proxy struct {
	Host string
	// Port defaults to 80.
	Port     int
	User     string
	Password string
}

// Config configures a Fetcher.
type Config struct {
	BaseURL string
	User    string
	Key     string
	Proxy   *Proxy
	Timeout time.Duration
	// VerifyTLS enables certificate verification, which is off by default.
	VerifyTLS bool
}

// TransportError is returned when the request could not be completed or the
// service answered with a non-2xx status.
type TransportError struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fetcher posts request documents to the service.
type Fetcher struct {
	baseURL *url.URL
	user    string
	key     string
	client  *http.Client
}

// New creates a Fetcher from cfg.
func New(cfg Config) (*Fetcher, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	parsedURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme: %s. Only http and https are supported", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid base URL: host is missing")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Fetcher{
		baseURL: parsedURL,
		user:    cfg.User,
		key:     cfg.Key,
		client: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg),
		},
	}, nil
}

func newTransport(cfg Config) *http.Transport {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !cfg.VerifyTLS,
	}
	// The service is spoken to over HTTP/1.1 only.
	tr.ForceAttemptHTTP2 = false
	tr.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}

	if proxyURL := cfg.Proxy.URL(); proxyURL != nil {
		tr.Proxy = http.ProxyURL(proxyURL)
	}
	return tr
}

// URL returns the proxy address, or nil when no proxy host is configured.
// Credentials are attached only when both user and password are set.
func (p *Proxy) URL() *url.URL {
	if p == nil || strings.TrimSpace(p.Host) == "" {
		return nil
	}

	port := p.Port
	if port <= 0 {
		port = defaultProxyPort
	}

	u := &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(strings.TrimSpace(p.Host), strconv.Itoa(port)),
	}
	if p.User != "" && p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	return u
}

// Endpoint returns the request URL carrying the account credentials and, when
// lr is non-zero, the language-region code.
func (f *Fetcher) Endpoint(lr int) string {
	u := *f.baseURL
	params := u.Query()
	params.Set("user", f.user)
	params.Set("key", f.key)
	if lr != 0 {
		params.Set("lr", strconv.Itoa(lr))
	}
	u.RawQuery = params.Encode()
	return u.String()
}

// Post sends doc and returns the response body.
func (f *Fetcher) Post(ctx context.Context, doc []byte, lr int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint(lr), bytes.NewReader(doc))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", contentTypeXML)
	req.Header.Set("Accept", contentTypeXML)
	req.Header.Set("User-Agent", userAgent)
	req.SetBasicAuth(f.user, f.key)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(body))
		if len(detail) > 512 {
			detail = detail[:512]
		}
		if detail == "" {
			detail = resp.Status
		}
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: errors.New(detail)}
	}

	return body, nil
}
