// Package response interprets the XML document returned by the search service.
// It detects service errors, extracts totals and word statistics, and turns
// result groups into highlighted result items.
package response

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/f4ah6o/xmlsearch-go/internal/highlight"
	"github.com/f4ah6o/xmlsearch-go/internal/pagination"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Paging is the page and limit the response was requested with.
type Paging struct {
	Page  int
	Limit int
}

// ResultItem is one result group, represented by its first document.
type ResultItem struct {
	URL       string `json:"url" yaml:"url"`
	Domain    string `json:"domain" yaml:"domain"`
	Title     string `json:"title" yaml:"title"`
	Headline  string `json:"headline,omitempty" yaml:"headline,omitempty"`
	Passages  string `json:"passages,omitempty" yaml:"passages,omitempty"`
	Sitelinks string `json:"sitelinks,omitempty" yaml:"sitelinks,omitempty"`
}

// SearchResponse is the interpreted result of one request. Totals and the page
// count are resolved once while parsing and never change afterwards.
type SearchResponse struct {
	Results  []ResultItem
	Wordstat map[string]int
	Paging   Paging

	total      int
	totalHuman string
	pages      int
}

// Total returns the number of documents found.
func (r *SearchResponse) Total() int { return r.total }

// TotalHuman returns the service's human-readable total, e.g. "found 2 thousand answers".
func (r *SearchResponse) TotalHuman() string { return r.totalHuman }

// Pages returns the number of result pages for the requested limit.
func (r *SearchResponse) Pages() int { return r.pages }

// PageBar returns the page bar for the requested page.
func (r *SearchResponse) PageBar() []pagination.Entry {
	return pagination.Bar(r.pages, r.Paging.Page)
}

// wire shapes

type envelope struct {
	Response *responseNode `xml:"response"`
}

type responseNode struct {
	Error      *errorNode  `xml:"error"`
	Found      []foundNode `xml:"found"`
	FoundHuman string      `xml:"found-human"`
	Wordstat   string      `xml:"wordstat"`
	Groups     []groupNode `xml:"results>grouping>group"`
}

type errorNode struct {
	Code string `xml:"code,attr"`
	Text string `xml:",chardata"`
}

type foundNode struct {
	Priority string `xml:"priority,attr"`
	Value    string `xml:",chardata"`
}

type groupNode struct {
	Docs []docNode `xml:"doc"`
}

type docNode struct {
	URL       string        `xml:"url"`
	Domain    string        `xml:"domain"`
	Title     *fragment     `xml:"title"`
	Headline  *fragment     `xml:"headline"`
	Passages  *passagesNode `xml:"passages"`
	Sitelinks []fragment    `xml:"snippets>sitelinks>link"`
}

type fragment struct {
	Inner string `xml:",innerxml"`
}

type passagesNode struct {
	Inner    string     `xml:",innerxml"`
	Passages []fragment `xml:"passage"`
}

// Parse interprets raw response bytes. A service error element yields a
// *ServiceError; a document that does not have the expected shape yields an
// error wrapping ErrMalformedResponse.
func Parse(data []byte, paging Paging) (*SearchResponse, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if env.Response == nil {
		return nil, fmt.Errorf("%w: no response element", ErrMalformedResponse)
	}
	node := env.Response

	if node.Error != nil {
		return nil, serviceError(node.Error)
	}

	wordstat, err := parseWordstat(node.Wordstat)
	if err != nil {
		return nil, err
	}

	total, err := foundAll(node.Found)
	if err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		Results:    make([]ResultItem, 0, len(node.Groups)),
		Wordstat:   wordstat,
		Paging:     paging,
		total:      total,
		totalHuman: strings.TrimSpace(node.FoundHuman),
		pages:      pagination.Pages(total, paging.Limit),
	}
	for _, g := range node.Groups {
		resp.Results = append(resp.Results, resultItem(g))
	}

	return resp, nil
}

func serviceError(n *errorNode) error {
	code, err := strconv.Atoi(strings.TrimSpace(n.Code))
	if err != nil {
		return fmt.Errorf("%w: error code %q is not a number", ErrMalformedResponse, n.Code)
	}
	return &ServiceError{Code: code, Context: strings.TrimSpace(n.Text)}
}

// parseWordstat parses "word:count, word:count". An empty value means the
// service sent no statistics.
func parseWordstat(s string) (map[string]int, error) {
	stats := make(map[string]int)
	if strings.TrimSpace(s) == "" {
		return stats, nil
	}

	for _, pair := range strings.Split(s, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		i := strings.LastIndex(pair, ":")
		if i < 0 {
			return nil, fmt.Errorf("%w: wordstat entry %q has no count", ErrMalformedResponse, pair)
		}
		word := strings.TrimSpace(pair[:i])
		count, err := strconv.Atoi(strings.TrimSpace(pair[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("%w: wordstat count for %q: %v", ErrMalformedResponse, word, err)
		}
		stats[word] = count
	}
	return stats, nil
}

func foundAll(found []foundNode) (int, error) {
	for _, f := range found {
		if f.Priority != "all" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(f.Value))
		if err != nil {
			return 0, fmt.Errorf("%w: found count %q is not a number", ErrMalformedResponse, f.Value)
		}
		return n, nil
	}
	return 0, nil
}

func resultItem(g groupNode) ResultItem {
	// Requests ask for one document per group.
	if len(g.Docs) == 0 {
		return ResultItem{}
	}
	doc := g.Docs[0]

	item := ResultItem{
		URL:    strings.TrimSpace(doc.URL),
		Domain: strings.TrimSpace(doc.Domain),
	}
	item.Title = item.URL
	if doc.Title != nil {
		item.Title = highlighted(doc.Title.Inner)
	}
	if doc.Headline != nil {
		item.Headline = highlighted(doc.Headline.Inner)
	}
	if doc.Passages != nil && len(doc.Passages.Passages) > 0 {
		item.Passages = highlighted(doc.Passages.Inner)
	}
	if len(doc.Sitelinks) > 0 {
		item.Sitelinks = highlighted(doc.Sitelinks[0].Inner)
	}
	return item
}

func highlighted(markup string) string {
	return strings.TrimSpace(highlight.Fragment(markup))
}

// charsetReader decodes response bodies declared in a non-UTF-8 charset.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported response charset %q: %w", label, err)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
