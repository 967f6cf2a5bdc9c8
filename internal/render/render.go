// Package render prints search responses for the command line in text, JSON,
// YAML or Markdown form.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/f4ah6o/xmlsearch-go/internal/pagination"
	"github.com/f4ah6o/xmlsearch-go/internal/response"
	"gopkg.in/yaml.v3"
)

// Format selects the output representation.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid format: %s. Must be 'text', 'json', 'yaml', or 'markdown'", s)
}

// WordCount is one wordstat entry.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Report is the printable view of one search.
type Report struct {
	Query      string                `json:"query" yaml:"query"`
	Total      int                   `json:"total" yaml:"total"`
	TotalHuman string                `json:"total_human" yaml:"total_human"`
	Page       int                   `json:"page" yaml:"page"`
	Limit      int                   `json:"limit" yaml:"limit"`
	Pages      int                   `json:"pages" yaml:"pages"`
	Results    []response.ResultItem `json:"results" yaml:"results"`
	Wordstat   []WordCount           `json:"wordstat" yaml:"wordstat"`
	PageBar    []pagination.Entry    `json:"page_bar" yaml:"page_bar"`
}

// NewReport builds a Report for query from resp.
func NewReport(query string, resp *response.SearchResponse) Report {
	return Report{
		Query:      query,
		Total:      resp.Total(),
		TotalHuman: resp.TotalHuman(),
		Page:       resp.Paging.Page,
		Limit:      resp.Paging.Limit,
		Pages:      resp.Pages(),
		Results:    resp.Results,
		Wordstat:   sortedWordstat(resp.Wordstat),
		PageBar:    resp.PageBar(),
	}
}

// sortedWordstat orders entries by count (descending), then word.
func sortedWordstat(stats map[string]int) []WordCount {
	out := make([]WordCount, 0, len(stats))
	for w, c := range stats {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// PageLabel fills an entry's template with its 1-based page number.
func PageLabel(e pagination.Entry) string {
	if e.Kind == pagination.KindText {
		return e.Text
	}
	return fmt.Sprintf(e.Text, e.Page+1)
}

// Write prints r to w in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case FormatMarkdown:
		return writeMarkdown(w, r)
	case FormatText, "":
		return writeText(w, r)
	}
	return fmt.Errorf("invalid format: %s", format)
}
