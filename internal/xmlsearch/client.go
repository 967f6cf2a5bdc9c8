// Package xmlsearch is the client for the XML search service. It turns a
// request.SearchRequest into a request document, sends it and interprets the
// response.
package xmlsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/f4ah6o/xmlsearch-go/internal/fetcher"
	"github.com/f4ah6o/xmlsearch-go/internal/request"
	"github.com/f4ah6o/xmlsearch-go/internal/response"
)

var (
	// ErrConfiguration is returned by New when the account user or key is missing.
	ErrConfiguration = errors.New("user or key is not set")
	// ErrInvalidRequest is returned by Search for requests the service would reject.
	ErrInvalidRequest = errors.New("invalid search request")
)

// Config holds the account credentials and transport settings.
type Config struct {
	User    string
	Key     string
	BaseURL string
	Proxy   *fetcher.Proxy
	Timeout time.Duration
	// VerifyTLS turns on certificate verification.
	VerifyTLS bool
}

// Client performs searches. It is not safe for concurrent use.
type Client struct {
	fetcher     *fetcher.Fetcher
	lastRequest []byte
}

// New creates a Client. User and key are required.
func New(cfg Config) (*Client, error) {
	if cfg.User == "" || cfg.Key == "" {
		return nil, ErrConfiguration
	}

	f, err := fetcher.New(fetcher.Config{
		BaseURL:   cfg.BaseURL,
		User:      cfg.User,
		Key:       cfg.Key,
		Proxy:     cfg.Proxy,
		Timeout:   cfg.Timeout,
		VerifyTLS: cfg.VerifyTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return &Client{fetcher: f}, nil
}

// Validate checks the request invariants without contacting the service.
func Validate(req request.SearchRequest) error {
	if !req.HasAnchor() {
		return fmt.Errorf("%w: query and host are both empty", ErrInvalidRequest)
	}
	if req.Page < 0 {
		return fmt.Errorf("%w: page %d is negative", ErrInvalidRequest, req.Page)
	}
	if req.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidRequest, req.Limit)
	}
	return nil
}

// Document validates req and renders the request document that Search would send.
func Document(req request.SearchRequest) ([]byte, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	return request.Build(req).Marshal()
}

// Search sends req and returns the interpreted response. Service-reported
// errors come back as *response.ServiceError, transport failures as
// *fetcher.TransportError.
func (c *Client) Search(ctx context.Context, req request.SearchRequest) (*response.SearchResponse, error) {
	c.lastRequest = nil

	doc, err := Document(req)
	if err != nil {
		return nil, err
	}
	c.lastRequest = doc

	body, err := c.fetcher.Post(ctx, doc, req.LR)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	resp, err := response.Parse(body, response.Paging{Page: req.Page, Limit: req.Limit})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// LastRequest returns the document sent by the most recent Search call, or ""
// when that call was rejected before sending.
func (c *Client) LastRequest() string {
	return string(c.lastRequest)
}
